package main

import (
	"fmt"
	"strings"

	"github.com/rubiojr/postos/internal/geo"
	"github.com/rubiojr/postos/internal/prices"
	"github.com/rubiojr/postos/internal/stations"
	"github.com/urfave/cli/v2"
)

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Register a gas station and its prices",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Usage:    "Station name",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "city",
				Usage:    "City",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "state",
				Usage:    "State (UF), e.g. PR",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Street address",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:     "price",
				Usage:    "Fuel price as LABEL:VALUE, e.g. \"Gasolina Comum:5,29\" (repeatable)",
				Required: true,
			},
		},
		Action: registerAction,
	}
}

func registerAction(c *cli.Context) error {
	uf, ok := geo.LookupState(c.String("state"))
	if !ok {
		return fmt.Errorf("unknown state %q", c.String("state"))
	}

	form := stations.Form{
		Name:    c.String("name"),
		City:    c.String("city"),
		State:   uf.Sigla,
		Address: c.String("address"),
	}
	for i, p := range c.StringSlice("price") {
		label, value, err := splitPrice(p)
		if err != nil {
			return err
		}
		form.Prices = append(form.Prices, prices.Entry{
			ID:    prices.Pending(int64(i + 1)),
			Label: label,
			Value: value,
		})
	}

	logger := newLogger(c)
	client := newClient(c, logger)
	tr := texts(c)

	station, err := stations.Register(c.Context, client, prices.NewSubmitter(client, logger), form)
	if station != nil {
		fmt.Fprintln(c.App.Writer, tr.StationRegistered, station.ID)
	}
	if err != nil {
		if station != nil {
			fmt.Fprintln(c.App.ErrWriter, tr.PricesNotRegistered, err)
		}
		return err
	}
	return nil
}

// splitPrice splits "LABEL:VALUE" on the last colon.
func splitPrice(s string) (label, value string, err error) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return "", "", fmt.Errorf("invalid price %q, expected LABEL:VALUE", s)
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), nil
}
