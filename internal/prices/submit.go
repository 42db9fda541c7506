package prices

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rubiojr/postos/pkg/api"
)

// PriceWriter is the part of the API a Submitter needs.
type PriceWriter interface {
	UpdatePrices(ctx context.Context, prices []api.PriceUpdate) error
	CreatePrices(ctx context.Context, prices []api.NewPrice) error
	DeletePrices(ctx context.Context, ids []int64) error
}

// Submitter sends a Plan to the API.
type Submitter struct {
	api PriceWriter
	log *slog.Logger
}

func NewSubmitter(w PriceWriter, logger *slog.Logger) *Submitter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Submitter{api: w, log: logger}
}

// Submit applies plan to the prices of a station: update, then create, then
// delete, skipping empty sets. All values are parsed before anything is sent,
// so a *MalformedPriceError means the API was not touched. A failing call
// stops the sequence with a *SyncError; earlier calls are not undone.
func (s *Submitter) Submit(ctx context.Context, stationID int64, plan Plan) error {
	updates, err := priceUpdates(stationID, plan.ToUpdate)
	if err != nil {
		return err
	}
	creates, err := newPrices(stationID, plan.ToCreate)
	if err != nil {
		return err
	}
	deletes := make([]int64, 0, len(plan.ToDelete))
	for _, e := range plan.ToDelete {
		deletes = append(deletes, e.ID.Number())
	}

	key := uuid.NewString()
	ctx = api.WithIdempotencyKey(ctx, key)
	log := s.log.With("station", stationID, "idempotency_key", key)

	if len(updates) > 0 {
		if err := s.api.UpdatePrices(ctx, updates); err != nil {
			log.Error("Error updating prices", "count", len(updates), "error", err)
			return &SyncError{Step: StepUpdate, Err: err}
		}
		log.Debug("Prices updated", "count", len(updates))
	}

	if len(creates) > 0 {
		if err := s.api.CreatePrices(ctx, creates); err != nil {
			log.Error("Error creating prices", "count", len(creates), "error", err)
			return &SyncError{Step: StepCreate, Err: err}
		}
		log.Debug("Prices created", "count", len(creates))
	}

	if len(deletes) > 0 {
		if err := s.api.DeletePrices(ctx, deletes); err != nil {
			log.Error("Error deleting prices", "count", len(deletes), "error", err)
			return &SyncError{Step: StepDelete, Err: err}
		}
		log.Debug("Prices deleted", "count", len(deletes))
	}

	return nil
}

func priceUpdates(stationID int64, entries []Entry) ([]api.PriceUpdate, error) {
	out := make([]api.PriceUpdate, 0, len(entries))
	for _, e := range entries {
		v, err := parseEntry(e)
		if err != nil {
			return nil, err
		}
		out = append(out, api.PriceUpdate{
			ID:        e.ID.Number(),
			Name:      e.Label,
			Value:     v,
			StationID: stationID,
		})
	}
	return out, nil
}

func newPrices(stationID int64, entries []Entry) ([]api.NewPrice, error) {
	out := make([]api.NewPrice, 0, len(entries))
	for _, e := range entries {
		v, err := parseEntry(e)
		if err != nil {
			return nil, err
		}
		out = append(out, api.NewPrice{
			Name:      e.Label,
			Value:     v,
			StationID: stationID,
		})
	}
	return out, nil
}

// Validate checks that every entry holds a parseable price.
func Validate(entries []Entry) error {
	for _, e := range entries {
		if _, err := parseEntry(e); err != nil {
			return err
		}
	}
	return nil
}

func parseEntry(e Entry) (float64, error) {
	v, err := api.ParsePrice(e.Value)
	if err != nil {
		return 0, &MalformedPriceError{ID: e.ID, Label: e.Label, Value: e.Value, Err: err}
	}
	return v, nil
}
