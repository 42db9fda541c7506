package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/rubiojr/postos/internal/prices"
	"github.com/rubiojr/postos/internal/translations"
	"github.com/urfave/cli/v2"
)

func editPricesCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit-prices",
		Usage:     "Change, add or remove the prices of a station",
		ArgsUsage: "STATION_ID",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "Change a price as PRICE_ID=LABEL:VALUE; an empty LABEL or VALUE is kept (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "add",
				Usage: "Add a price as LABEL:VALUE (repeatable)",
			},
			&cli.Int64SliceFlag{
				Name:  "remove",
				Usage: "Remove a price by id (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show what would change without saving",
			},
		},
		Action: editPricesAction,
	}
}

func editPricesAction(c *cli.Context) error {
	stationID, err := stationIDArg(c)
	if err != nil {
		return err
	}

	logger := newLogger(c)
	client := newClient(c, logger)
	session, _, err := prices.Load(c.Context, client, stationID, prices.NewSubmitter(client, logger), logger)
	if err != nil {
		return err
	}
	store := session.Store()

	for _, s := range c.StringSlice("set") {
		if err := applySet(store, s); err != nil {
			return err
		}
	}

	for _, id := range c.Int64Slice("remove") {
		if _, ok := store.Get(prices.Persisted(id)); !ok {
			return fmt.Errorf("station %d has no price %d", stationID, id)
		}
		store.Remove(prices.Persisted(id))
	}

	for _, a := range c.StringSlice("add") {
		label, value, err := splitPrice(a)
		if err != nil {
			return err
		}
		id := store.Add()
		store.Update(id, prices.FieldLabel, label)
		store.Update(id, prices.FieldValue, value)
		store.ToggleEditing(id)
	}

	tr := texts(c)
	out := c.App.Writer

	if c.Bool("dry-run") {
		plan, err := prices.Reconcile(session.Snapshot(), store.Entries())
		if err != nil {
			return err
		}
		if err := prices.Validate(slices.Concat(plan.ToUpdate, plan.ToCreate)); err != nil {
			return err
		}
		printPlan(out, tr, plan)
		return nil
	}

	plan, err := session.Save(c.Context)
	if err != nil {
		return err
	}
	if plan.Empty() {
		fmt.Fprintln(out, tr.NothingToSave)
		return nil
	}
	printPlan(out, tr, plan)
	fmt.Fprintln(out, tr.PricesSaved)
	return nil
}

// applySet handles one --set value, PRICE_ID=LABEL:VALUE.
func applySet(store *prices.Store, s string) error {
	rawID, rest, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("invalid --set %q, expected PRICE_ID=LABEL:VALUE", s)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid price id %q: %w", rawID, err)
	}
	id := prices.Persisted(n)
	if _, ok := store.Get(id); !ok {
		return fmt.Errorf("unknown price id %d", n)
	}

	label, value, err := splitPrice(rest)
	if err != nil {
		return err
	}
	if label != "" {
		store.Update(id, prices.FieldLabel, label)
	}
	if value != "" {
		store.Update(id, prices.FieldValue, value)
	}
	return nil
}

func printPlan(out io.Writer, tr translations.Translations, plan prices.Plan) {
	if plan.Empty() {
		fmt.Fprintln(out, tr.NothingToSave)
		return
	}
	section := func(title string, entries []prices.Entry) {
		fmt.Fprintln(out, title, len(entries))
		for _, e := range entries {
			fmt.Fprintf(out, "   %s %s: %s\n", e.ID, e.Label, e.Value)
		}
	}
	section(tr.Updated, plan.ToUpdate)
	section(tr.Created, plan.ToCreate)
	section(tr.Removed, plan.ToDelete)
}
