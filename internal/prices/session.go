package prices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/rubiojr/postos/pkg/api"
)

// State is the lifecycle state of an editing session.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StationFetcher loads a station with its prices.
type StationFetcher interface {
	GetStation(ctx context.Context, id int64) (*api.Station, error)
}

// Session is the editing of one station's price list, from load to save.
type Session struct {
	stationID int64
	snapshot  Snapshot
	store     *Store
	submitter *Submitter
	log       *slog.Logger

	mu    sync.Mutex
	state State
}

// NewSession starts editing a copy of snapshot.
func NewSession(stationID int64, snapshot Snapshot, submitter *Submitter, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		stationID: stationID,
		snapshot:  snapshot,
		store:     NewStore(snapshot.entries),
		submitter: submitter,
		log:       logger,
	}
}

// Load fetches a station and starts a session on its current prices.
func Load(ctx context.Context, f StationFetcher, stationID int64, submitter *Submitter, logger *slog.Logger) (*Session, *api.Station, error) {
	station, err := f.GetStation(ctx, stationID)
	if err != nil {
		return nil, nil, err
	}
	return NewSession(station.ID, SnapshotFromStation(station), submitter, logger), station, nil
}

func (s *Session) StationID() int64 { return s.stationID }

// Store returns the editable entries. It must not be used concurrently with Save.
func (s *Session) Store() *Store { return s.store }

// Snapshot returns the baseline the next Save compares against. After a
// partial failure it includes what the failed save already applied.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Save reconciles the edited entries with the snapshot and submits the
// result. It returns the plan that was sent.
//
// Errors raised before any request is sent (*PendingEditError,
// *MalformedPriceError, ErrReloadRequired) leave the session as it was. A
// *SyncError moves the session to StateFailed, from which Save may be
// retried: the calls that went through before the failing one are folded
// into the snapshot and are not sent again.
func (s *Session) Save(ctx context.Context) (Plan, error) {
	s.mu.Lock()
	switch s.state {
	case StateSubmitting:
		s.mu.Unlock()
		return Plan{}, ErrSaveInFlight
	case StateDone:
		s.mu.Unlock()
		return Plan{}, ErrSessionClosed
	}
	plan, err := Reconcile(s.snapshot, s.store.Entries())
	if err == nil {
		err = checkSendable(plan)
	}
	if err != nil {
		s.mu.Unlock()
		return Plan{}, err
	}
	prev := s.state
	s.state = StateSubmitting
	s.mu.Unlock()

	s.log.Debug("Saving prices", "station", s.stationID,
		"update", len(plan.ToUpdate), "create", len(plan.ToCreate), "delete", len(plan.ToDelete))

	err = s.submitter.Submit(ctx, s.stationID, plan)

	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		malformed *MalformedPriceError
		syncErr   *SyncError
	)
	switch {
	case err == nil:
		s.state = StateDone
	case errors.As(err, &malformed):
		s.state = prev
	case errors.As(err, &syncErr):
		s.settle(plan, syncErr.Step)
		s.state = StateFailed
	default:
		s.state = StateFailed
	}
	if err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// settle moves the steps of plan that were applied before failed into the
// snapshot. Created entries keep their pending IDs since the API does not
// return the IDs it assigned.
func (s *Session) settle(plan Plan, failed Step) {
	if failed == StepUpdate {
		return
	}

	entries := cloneEntries(s.snapshot.entries)
	index := make(map[ID]int, len(entries))
	for i, e := range entries {
		index[e.ID] = i
	}
	for _, e := range plan.ToUpdate {
		e.Editing = false
		if i, ok := index[e.ID]; ok {
			entries[i] = e
		}
	}
	if failed == StepDelete {
		for _, e := range plan.ToCreate {
			e.Editing = false
			entries = append(entries, e)
		}
	}

	s.snapshot = Snapshot{entries: entries}
	s.log.Debug("Partial save kept", "station", s.stationID, "failed_step", failed,
		"updated", len(plan.ToUpdate), "created", len(entries)-len(index))
}

// checkSendable rejects plans that would change an entry created by an
// earlier partial save, since its remote ID is unknown.
func checkSendable(plan Plan) error {
	for _, e := range slices.Concat(plan.ToUpdate, plan.ToDelete) {
		if e.ID.Pending() {
			return fmt.Errorf("%w: %s %q", ErrReloadRequired, e.ID, e.Label)
		}
	}
	return nil
}
