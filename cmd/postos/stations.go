package main

import (
	"fmt"
	"io"

	"github.com/rubiojr/postos/internal/geo"
	"github.com/rubiojr/postos/internal/stations"
	"github.com/rubiojr/postos/internal/translations"
	"github.com/rubiojr/postos/pkg/api"
	"github.com/urfave/cli/v2"
)

func stationsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stations",
		Usage: "List registered gas stations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "state",
				Usage: "Only stations in this state (UF), e.g. PR",
			},
			&cli.StringFlag{
				Name:  "city",
				Usage: "Only stations in this city",
			},
		},
		Action: stationsAction,
	}
}

func stationsAction(c *cli.Context) error {
	state := c.String("state")
	if state != "" {
		uf, ok := geo.LookupState(state)
		if !ok {
			return fmt.Errorf("unknown state %q", state)
		}
		state = uf.Sigla
	}

	client := newClient(c, newLogger(c))
	list, err := client.ListStations(c.Context)
	if err != nil {
		return err
	}

	tr := texts(c)
	out := c.App.Writer
	list = stations.Filter(list, state, c.String("city"))
	if len(list) == 0 {
		fmt.Fprintln(out, tr.NoStationsFound)
		return nil
	}

	fmt.Fprintln(out, tr.StationsFound)
	for _, s := range list {
		fmt.Fprintf(out, "[%d] %s\n", s.ID, s.Name)
		fmt.Fprintf(out, "   %s, %s - %s\n", s.Address, s.City, s.State)
		printPrices(out, tr, s.Prices, false)
		fmt.Fprintf(out, "   %d %s\n\n", s.TotalReactions, tr.ReactionsCount)
	}
	return nil
}

func printPrices(out io.Writer, tr translations.Translations, prices []api.Price, withIDs bool) {
	if len(prices) == 0 {
		fmt.Fprintf(out, "   %s\n", tr.NoPrices)
		return
	}
	for _, p := range prices {
		if withIDs {
			fmt.Fprintf(out, "   #%d %s: %s\n", p.ID, p.Name, api.DisplayPrice(p.Price))
			continue
		}
		fmt.Fprintf(out, "   %s: %s\n", p.Name, api.DisplayPrice(p.Price))
	}
}
