// Package reactions tracks the likes and dislikes of the current user.
//
// A reaction is applied in two phases: the predicted reaction set is visible
// immediately, then replaced by what the API confirms. When the API calls
// fail the tracker goes back to the reactions it had before the change, minus
// whatever the calls that did succeed already removed.
package reactions

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/rubiojr/postos/pkg/api"
)

// API is the part of the API client the tracker uses.
type API interface {
	MyReactions(ctx context.Context, userID int64) ([]api.Reaction, error)
	CreateReaction(ctx context.Context, r api.NewReaction) (*api.Reaction, error)
	DeleteReaction(ctx context.Context, id int64) error
	GetStation(ctx context.Context, id int64) (*api.Station, error)
}

type Tracker struct {
	api    API
	userID int64
	log    *slog.Logger

	mu        sync.Mutex
	reactions []api.Reaction
}

func NewTracker(a API, userID int64, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{api: a, userID: userID, log: logger}
}

// Refresh replaces the local reactions with the ones stored by the API.
func (t *Tracker) Refresh(ctx context.Context) error {
	reactions, err := t.api.MyReactions(ctx, t.userID)
	if err != nil {
		return err
	}
	t.set(reactions)
	return nil
}

// Reactions returns a copy of the current reactions.
func (t *Tracker) Reactions() []api.Reaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.reactions)
}

func (t *Tracker) IsLiked(stationID int64) bool {
	return t.has(stationID, api.Like)
}

func (t *Tracker) IsDisliked(stationID int64) bool {
	return t.has(stationID, api.Dislike)
}

// Like toggles a like on a station, replacing a dislike if there is one.
// It returns the station as refreshed after the change; the station is nil
// when the refresh failed but the reaction was applied.
func (t *Tracker) Like(ctx context.Context, stationID int64) (*api.Station, error) {
	return t.react(ctx, stationID, api.Like)
}

// Dislike toggles a dislike on a station, replacing a like if there is one.
func (t *Tracker) Dislike(ctx context.Context, stationID int64) (*api.Station, error) {
	return t.react(ctx, stationID, api.Dislike)
}

func (t *Tracker) react(ctx context.Context, stationID int64, kind api.ReactionKind) (*api.Station, error) {
	if t.hasUnconfirmed(stationID) {
		if err := t.Refresh(ctx); err != nil {
			return nil, fmt.Errorf("error refreshing reactions: %w", err)
		}
	}

	t.mu.Lock()
	prev := slices.Clone(t.reactions)
	t.reactions = predict(prev, t.userID, stationID, kind)
	t.mu.Unlock()

	log := t.log.With("station", stationID, "reaction", kind)
	if rollback, err := t.apply(ctx, prev, stationID, kind); err != nil {
		t.set(rollback)
		log.Error("Error handling reaction, rolled back", "error", err)
		if rerr := t.Refresh(ctx); rerr != nil {
			log.Warn("Error refreshing reactions after rollback", "error", rerr)
		}
		return nil, err
	}

	if err := t.Refresh(ctx); err != nil {
		log.Warn("Error refreshing reactions, keeping predicted state", "error", err)
	}

	station, err := t.api.GetStation(ctx, stationID)
	if err != nil {
		log.Warn("Error refreshing station", "error", err)
		return nil, nil
	}
	return station, nil
}

// apply issues the calls that turn prev into the predicted state. On error it
// returns the reactions matching what the API holds after the calls that
// went through.
func (t *Tracker) apply(ctx context.Context, prev []api.Reaction, stationID int64, kind api.ReactionKind) ([]api.Reaction, error) {
	if same, ok := find(prev, stationID, kind); ok {
		return prev, t.api.DeleteReaction(ctx, same.ID)
	}

	rollback := prev
	if opposite, ok := find(prev, stationID, kind.Opposite()); ok {
		if err := t.api.DeleteReaction(ctx, opposite.ID); err != nil {
			return prev, err
		}
		rollback = slices.DeleteFunc(slices.Clone(prev), func(r api.Reaction) bool {
			return r.ID == opposite.ID
		})
	}

	_, err := t.api.CreateReaction(ctx, api.NewReaction{
		StationID: stationID,
		UserID:    t.userID,
		Kind:      kind,
	})
	return rollback, err
}

func (t *Tracker) set(reactions []api.Reaction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reactions = reactions
}

func (t *Tracker) has(stationID int64, kind api.ReactionKind) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := find(t.reactions, stationID, kind)
	return ok
}

// hasUnconfirmed reports whether a predicted reaction on the station was
// never replaced by the API's version, so its id is unknown.
func (t *Tracker) hasUnconfirmed(stationID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.ContainsFunc(t.reactions, func(r api.Reaction) bool {
		return r.StationID == stationID && r.ID == 0
	})
}

// predict returns the reactions expected once kind is toggled on a station.
func predict(reactions []api.Reaction, userID, stationID int64, kind api.ReactionKind) []api.Reaction {
	out := make([]api.Reaction, 0, len(reactions)+1)
	toggledOff := false
	for _, r := range reactions {
		if r.StationID != stationID {
			out = append(out, r)
			continue
		}
		if r.Kind == kind {
			toggledOff = true
		}
	}
	if !toggledOff {
		out = append(out, api.Reaction{UserID: userID, StationID: stationID, Kind: kind})
	}
	return out
}

func find(reactions []api.Reaction, stationID int64, kind api.ReactionKind) (api.Reaction, bool) {
	for _, r := range reactions {
		if r.StationID == stationID && r.Kind == kind {
			return r, true
		}
	}
	return api.Reaction{}, false
}
