package main

import (
	"fmt"

	"github.com/rubiojr/postos/internal/reactions"
	"github.com/rubiojr/postos/pkg/api"
	"github.com/urfave/cli/v2"
)

// reactCommand builds the like and dislike commands. Reacting twice with the
// same kind removes the reaction.
func reactCommand(kind api.ReactionKind) *cli.Command {
	usage := "Like a station, or undo your like"
	if kind == api.Dislike {
		usage = "Dislike a station, or undo your dislike"
	}
	return &cli.Command{
		Name:      string(kind),
		Usage:     usage,
		ArgsUsage: "STATION_ID",
		Action: func(c *cli.Context) error {
			return reactAction(c, kind)
		},
	}
}

func reactAction(c *cli.Context, kind api.ReactionKind) error {
	stationID, err := stationIDArg(c)
	if err != nil {
		return err
	}

	logger := newLogger(c)
	tracker := reactions.NewTracker(newClient(c, logger), c.Int64("user"), logger)
	if err := tracker.Refresh(c.Context); err != nil {
		return err
	}

	toggle := tracker.Like
	if kind == api.Dislike {
		toggle = tracker.Dislike
	}
	station, err := toggle(c.Context, stationID)
	if err != nil {
		return err
	}

	tr := texts(c)
	out := c.App.Writer
	switch {
	case tracker.IsLiked(stationID):
		fmt.Fprintln(out, tr.ReactionRecorded, api.Like)
	case tracker.IsDisliked(stationID):
		fmt.Fprintln(out, tr.ReactionRecorded, api.Dislike)
	default:
		fmt.Fprintln(out, tr.ReactionRemoved)
	}
	if station != nil {
		fmt.Fprintf(out, "%s: %d %s\n", station.Name, station.TotalReactions, tr.ReactionsCount)
	}
	return nil
}
