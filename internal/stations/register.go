package stations

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rubiojr/postos/internal/prices"
	"github.com/rubiojr/postos/pkg/api"
)

var ErrInvalidForm = errors.New("name, city, state, address and at least one complete price are required")

// Form holds what a user types to register a station. Price rows left
// completely blank are ignored; any other row needs both a label and a value.
type Form struct {
	Name    string
	City    string
	State   string
	Address string
	Prices  []prices.Entry
}

// Valid reports whether all fields are filled and at least one price has both
// a label and a value.
func (f Form) Valid() bool {
	for _, v := range []string{f.Name, f.City, f.State, f.Address} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	for _, p := range f.Prices {
		if p.Label != "" && p.Value != "" {
			return true
		}
	}
	return false
}

// Creator creates stations.
type Creator interface {
	CreateStation(ctx context.Context, s api.NewStation) (*api.Station, error)
}

// Register creates the station and then its prices. Everything that can be
// checked locally is checked before the first request. If creating the
// prices fails the station is returned along with the error, since it was
// already created.
func Register(ctx context.Context, c Creator, submitter *prices.Submitter, f Form) (*api.Station, error) {
	if !f.Valid() {
		return nil, ErrInvalidForm
	}

	entries := filledPrices(f.Prices)
	plan, err := prices.Reconcile(prices.Snapshot{}, entries)
	if err != nil {
		return nil, err
	}
	for _, e := range plan.ToCreate {
		if strings.TrimSpace(e.Label) == "" {
			return nil, fmt.Errorf("%w: price %s has no label", ErrInvalidForm, e.ID)
		}
	}
	if err := prices.Validate(plan.ToCreate); err != nil {
		return nil, err
	}

	station, err := c.CreateStation(ctx, api.NewStation{
		Name:    strings.TrimSpace(f.Name),
		City:    f.City,
		State:   f.State,
		Address: strings.TrimSpace(f.Address),
	})
	if err != nil {
		return nil, err
	}

	if err := submitter.Submit(ctx, station.ID, plan); err != nil {
		return station, err
	}
	return station, nil
}

// filledPrices drops the rows that hold neither a label nor a value.
func filledPrices(entries []prices.Entry) []prices.Entry {
	return slices.DeleteFunc(slices.Clone(entries), func(e prices.Entry) bool {
		return !e.Editing && strings.TrimSpace(e.Label) == "" && strings.TrimSpace(e.Value) == ""
	})
}
