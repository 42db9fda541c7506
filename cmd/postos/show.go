package main

import (
	"fmt"

	"github.com/rubiojr/postos/internal/geo"
	"github.com/rubiojr/postos/internal/reactions"
	"github.com/urfave/cli/v2"
)

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a station, its prices and your reaction",
		ArgsUsage: "STATION_ID",
		Action:    showAction,
	}
}

func showAction(c *cli.Context) error {
	id, err := stationIDArg(c)
	if err != nil {
		return err
	}

	logger := newLogger(c)
	client := newClient(c, logger)
	station, err := client.GetStation(c.Context, id)
	if err != nil {
		return err
	}

	tr := texts(c)
	out := c.App.Writer
	fmt.Fprintf(out, "[%d] %s\n", station.ID, station.Name)
	fmt.Fprintf(out, "%s %s, %s - %s\n", tr.Address, station.Address, station.City, station.State)
	fmt.Fprintln(out, tr.Prices)
	printPrices(out, tr, station.Prices, true)
	fmt.Fprintf(out, "%d %s\n", station.TotalReactions, tr.ReactionsCount)

	tracker := reactions.NewTracker(client, c.Int64("user"), logger)
	if err := tracker.Refresh(c.Context); err != nil {
		logger.Warn("Error fetching reactions", "error", err)
	}
	switch {
	case tracker.IsLiked(station.ID):
		fmt.Fprintln(out, tr.YouLiked)
	case tracker.IsDisliked(station.ID):
		fmt.Fprintln(out, tr.YouDislike)
	}

	fmt.Fprintln(out, tr.Directions, geo.DirectionsURL(station, geo.Google))
	return nil
}
