package prices

import (
	"context"
	"errors"
	"testing"

	"github.com/rubiojr/postos/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	station *api.Station
	err     error
}

func (f fakeFetcher) GetStation(_ context.Context, _ int64) (*api.Station, error) {
	return f.station, f.err
}

func newTestSession(w PriceWriter) *Session {
	snapshot := NewSnapshot([]Entry{
		{ID: Persisted(1), Label: "Comum", Value: "5,29"},
		{ID: Persisted(2), Label: "Etanol", Value: "3,99"},
	})
	return NewSession(7, snapshot, NewSubmitter(w, nil), nil)
}

func TestSession_Save(t *testing.T) {
	w := &fakeWriter{}
	s := newTestSession(w)
	store := s.Store()

	store.Update(Persisted(1), FieldValue, "5,49")
	store.Remove(Persisted(2))
	id := store.Add()
	store.Update(id, FieldLabel, "Aditivada")
	store.Update(id, FieldValue, "5,99")
	store.ToggleEditing(id)

	plan, err := s.Save(context.Background())
	require.NoError(t, err)

	assert.Len(t, plan.ToUpdate, 1)
	assert.Len(t, plan.ToCreate, 1)
	assert.Len(t, plan.ToDelete, 1)
	assert.Equal(t, []Step{StepUpdate, StepCreate, StepDelete}, w.steps())
	assert.Equal(t, StateDone, s.State())

	_, err = s.Save(context.Background())
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Len(t, w.calls, 3)
}

func TestSession_PendingEditKeepsIdle(t *testing.T) {
	w := &fakeWriter{}
	s := newTestSession(w)
	s.Store().Add()

	_, err := s.Save(context.Background())
	var pending *PendingEditError
	require.True(t, errors.As(err, &pending))
	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, w.calls)
}

func TestSession_MalformedKeepsState(t *testing.T) {
	w := &fakeWriter{}
	s := newTestSession(w)
	s.Store().Update(Persisted(1), FieldValue, "abc")

	_, err := s.Save(context.Background())
	var malformed *MalformedPriceError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, w.calls)
}

func TestSession_FailedCanRetry(t *testing.T) {
	w := &fakeWriter{fail: map[Step]error{StepUpdate: errors.New("unavailable")}}
	s := newTestSession(w)
	s.Store().Update(Persisted(1), FieldValue, "5,49")

	_, err := s.Save(context.Background())
	var syncErr *SyncError
	require.True(t, errors.As(err, &syncErr))
	assert.Equal(t, StateFailed, s.State())

	w.fail = nil
	_, err = s.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, s.State())
}

func TestSession_RetryAfterDeleteFailure(t *testing.T) {
	w := &fakeWriter{fail: map[Step]error{StepDelete: errors.New("unavailable")}}
	s := newTestSession(w)
	store := s.Store()

	store.Update(Persisted(1), FieldValue, "5,49")
	store.Remove(Persisted(2))
	id := store.Add()
	store.Update(id, FieldLabel, "Aditivada")
	store.Update(id, FieldValue, "5,99")
	store.ToggleEditing(id)

	_, err := s.Save(context.Background())
	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, StepDelete, syncErr.Step)
	assert.Equal(t, StateFailed, s.State())
	assert.Equal(t, []Entry{
		{ID: Persisted(1), Label: "Comum", Value: "5,49"},
		{ID: Persisted(2), Label: "Etanol", Value: "3,99"},
		{ID: id, Label: "Aditivada", Value: "5,99"},
	}, s.Snapshot().Entries())

	w.fail = nil
	plan, err := s.Save(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plan.ToUpdate)
	assert.Empty(t, plan.ToCreate)
	assert.Equal(t, []Entry{{ID: Persisted(2), Label: "Etanol", Value: "3,99"}}, plan.ToDelete)

	assert.Equal(t, []Step{StepUpdate, StepCreate, StepDelete, StepDelete}, w.steps())
	assert.Equal(t, []int64{2}, w.calls[3].deletes)
	assert.Equal(t, StateDone, s.State())
}

func TestSession_RetryAfterCreateFailure(t *testing.T) {
	w := &fakeWriter{fail: map[Step]error{StepCreate: errors.New("unavailable")}}
	s := newTestSession(w)
	store := s.Store()

	store.Update(Persisted(1), FieldValue, "5,49")
	id := store.Add()
	store.Update(id, FieldLabel, "Aditivada")
	store.Update(id, FieldValue, "5,99")
	store.ToggleEditing(id)

	_, err := s.Save(context.Background())
	require.Error(t, err)

	w.fail = nil
	plan, err := s.Save(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plan.ToUpdate, "the update already went through")
	assert.Equal(t, []Entry{{ID: id, Label: "Aditivada", Value: "5,99"}}, plan.ToCreate)
	assert.Equal(t, []Step{StepUpdate, StepCreate, StepCreate}, w.steps())
}

func TestSession_ChangingPartiallySavedEntry(t *testing.T) {
	w := &fakeWriter{fail: map[Step]error{StepDelete: errors.New("unavailable")}}
	s := newTestSession(w)
	store := s.Store()

	store.Remove(Persisted(2))
	id := store.Add()
	store.Update(id, FieldLabel, "Aditivada")
	store.Update(id, FieldValue, "5,99")
	store.ToggleEditing(id)

	_, err := s.Save(context.Background())
	require.Error(t, err)

	store.Update(id, FieldValue, "6,09")
	_, err = s.Save(context.Background())
	assert.ErrorIs(t, err, ErrReloadRequired)
	assert.Equal(t, StateFailed, s.State())
	assert.Len(t, w.calls, 2)
}

func TestSession_RejectsSaveInFlight(t *testing.T) {
	w := &fakeWriter{start: make(chan struct{}), block: make(chan struct{})}
	s := newTestSession(w)
	s.Store().Update(Persisted(1), FieldValue, "5,49")

	done := make(chan error, 1)
	go func() {
		_, err := s.Save(context.Background())
		done <- err
	}()

	<-w.start
	assert.Equal(t, StateSubmitting, s.State())

	_, err := s.Save(context.Background())
	assert.ErrorIs(t, err, ErrSaveInFlight)

	close(w.block)
	require.NoError(t, <-done)
	assert.Equal(t, StateDone, s.State())
	assert.Len(t, w.calls, 1)
}

func TestLoad(t *testing.T) {
	station := &api.Station{
		ID:     7,
		Name:   "Posto Central",
		Prices: []api.Price{{ID: 1, Name: "Comum", Price: 5.29}},
	}

	s, got, err := Load(context.Background(), fakeFetcher{station: station}, 7, NewSubmitter(&fakeWriter{}, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, station, got)
	assert.Equal(t, int64(7), s.StationID())
	assert.Equal(t, []Entry{{ID: Persisted(1), Label: "Comum", Value: "5,29"}}, s.Store().Entries())
	assert.Equal(t, StateIdle, s.State())

	_, _, err = Load(context.Background(), fakeFetcher{err: api.ErrNotFound}, 8, nil, nil)
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "State(9)", State(9).String())
}
