package main

import (
	"fmt"

	"github.com/rubiojr/postos/internal/config"
	"github.com/rubiojr/postos/internal/geo"
	"github.com/urfave/cli/v2"
)

func citiesCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:      "cities",
		Usage:     "List the municipalities of a state, or the states when none is given",
		ArgsUsage: "[UF]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "ibge-url",
				Usage: "IBGE localidades API base URL",
				Value: cfg.IBGEURL,
			},
		},
		Action: citiesAction,
	}
}

func citiesAction(c *cli.Context) error {
	out := c.App.Writer
	if c.NArg() == 0 {
		for _, uf := range geo.States() {
			fmt.Fprintf(out, "%s  %s (%s)\n", uf.Sigla, uf.Nome, uf.Regiao.Nome)
		}
		return nil
	}

	uf, ok := geo.LookupState(c.Args().First())
	if !ok {
		return fmt.Errorf("unknown state %q", c.Args().First())
	}

	ibge := geo.NewIBGE(c.String("ibge-url"), c.Duration("timeout"), newLogger(c))
	cities, err := ibge.Cities(c.Context, uf.Sigla)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, texts(c).CitiesOf, uf.Nome)
	for _, city := range cities {
		fmt.Fprintln(out, city)
	}
	return nil
}
