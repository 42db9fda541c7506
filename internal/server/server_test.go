package server

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/go-chi/httplog/v2"
	"github.com/rubiojr/postos/internal/prices"
	"github.com/rubiojr/postos/internal/reactions"
	"github.com/rubiojr/postos/internal/stations"
	"github.com/rubiojr/postos/internal/store"
	"github.com/rubiojr/postos/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *api.Client) {
	t.Helper()
	ctx := context.Background()

	storage, err := store.NewStorage(ctx, filepath.Join(t.TempDir(), "postos.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })

	logger := httplog.NewLogger("postos-test", httplog.Options{
		LogLevel: slog.LevelError,
		Concise:  true,
	})

	srv := httptest.NewServer(NewRouter(storage, logger, Options{}))
	t.Cleanup(srv.Close)

	return srv, api.NewClient(srv.URL, 0, nil)
}

func registerStation(t *testing.T, client *api.Client) *api.Station {
	t.Helper()
	st, err := stations.Register(context.Background(), client, prices.NewSubmitter(client, nil), stations.Form{
		Name:    "Posto Central",
		City:    "Curitiba",
		State:   "PR",
		Address: "Rua XV, 100",
		Prices: []prices.Entry{
			{ID: prices.Pending(1), Label: "Gasolina Comum", Value: "5,29"},
			{ID: prices.Pending(2), Label: "Etanol", Value: "3,99"},
		},
	})
	require.NoError(t, err)
	return st
}

func TestRegisterAndList(t *testing.T) {
	ctx := context.Background()
	_, client := newTestServer(t)

	created := registerStation(t, client)

	list, err := client.ListStations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	require.Len(t, list[0].Prices, 2)
	assert.Equal(t, "Gasolina Comum", list[0].Prices[0].Name)
	assert.Equal(t, 5.29, list[0].Prices[0].Price)

	_, err = client.GetStation(ctx, created.ID+1)
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestEditSession(t *testing.T) {
	ctx := context.Background()
	_, client := newTestServer(t)
	created := registerStation(t, client)

	session, station, err := prices.Load(ctx, client, created.ID, prices.NewSubmitter(client, nil), nil)
	require.NoError(t, err)
	require.Len(t, station.Prices, 2)
	comum, etanol := station.Prices[0], station.Prices[1]

	st := session.Store()
	st.Update(prices.Persisted(comum.ID), prices.FieldValue, "5,49")
	st.Remove(prices.Persisted(etanol.ID))
	id := st.Add()
	st.Update(id, prices.FieldLabel, "Diesel S10")
	st.Update(id, prices.FieldValue, "6,19")
	st.ToggleEditing(id)

	plan, err := session.Save(ctx)
	require.NoError(t, err)
	assert.Len(t, plan.ToUpdate, 1)
	assert.Len(t, plan.ToCreate, 1)
	assert.Len(t, plan.ToDelete, 1)
	assert.Equal(t, prices.StateDone, session.State())

	got, err := client.GetStation(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Prices, 2)
	assert.Equal(t, api.Price{ID: comum.ID, Name: "Gasolina Comum", Price: 5.49, StationID: created.ID}, got.Prices[0])
	assert.Equal(t, "Diesel S10", got.Prices[1].Name)
	assert.Equal(t, 6.19, got.Prices[1].Price)
}

func TestEditSession_UnknownPriceFailsUpdateStep(t *testing.T) {
	ctx := context.Background()
	_, client := newTestServer(t)
	created := registerStation(t, client)

	snapshot := prices.NewSnapshot([]prices.Entry{{ID: prices.Persisted(999), Label: "Ghost", Value: "1,00"}})
	session := prices.NewSession(created.ID, snapshot, prices.NewSubmitter(client, nil), nil)
	session.Store().Update(prices.Persisted(999), prices.FieldValue, "2,00")

	_, err := session.Save(ctx)
	var syncErr *prices.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, prices.StepUpdate, syncErr.Step)
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.Equal(t, prices.StateFailed, session.State())
}

func TestReactions(t *testing.T) {
	ctx := context.Background()
	_, client := newTestServer(t)
	created := registerStation(t, client)

	tracker := reactions.NewTracker(client, 7, nil)
	require.NoError(t, tracker.Refresh(ctx))

	st, err := tracker.Like(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, tracker.IsLiked(created.ID))
	require.NotNil(t, st)
	assert.Equal(t, 1, st.TotalReactions)

	_, err = tracker.Dislike(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, tracker.IsDisliked(created.ID))
	assert.False(t, tracker.IsLiked(created.ID))

	mine, err := client.MyReactions(ctx, 7)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, api.Dislike, mine[0].Kind)

	st, err = tracker.Dislike(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, tracker.IsDisliked(created.ID))
	assert.Equal(t, 0, st.TotalReactions)
}

func post(t *testing.T, url, key, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(api.IdempotencyHeader, key)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestCreateBulk_IdempotentReplay(t *testing.T) {
	ctx := context.Background()
	srv, client := newTestServer(t)
	created, err := client.CreateStation(ctx, api.NewStation{Name: "Posto", City: "Curitiba", State: "PR", Address: "Rua 1"})
	require.NoError(t, err)

	body := `{"prices":[{"name":"Comum","value":5.29,"station_id":` + itoa(created.ID) + `}]}`

	resp := post(t, srv.URL+"/prices/create_bulk", "abc", body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(replayedHeader))

	resp = post(t, srv.URL+"/prices/create_bulk", "abc", body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get(replayedHeader))

	got, err := client.GetStation(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Prices, 1)
}

func TestCreateBulk_LegacyPriceField(t *testing.T) {
	ctx := context.Background()
	srv, client := newTestServer(t)
	created, err := client.CreateStation(ctx, api.NewStation{Name: "Posto", City: "Curitiba", State: "PR", Address: "Rua 1"})
	require.NoError(t, err)

	resp := post(t, srv.URL+"/prices/create_bulk", "",
		`{"prices":[{"name":"Etanol","price":3.79,"station_id":`+itoa(created.ID)+`}]}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	got, err := client.GetStation(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Prices, 1)
	assert.Equal(t, 3.79, got.Prices[0].Price)
}

func TestBadRequests(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"invalid json", "/stations", `{`, http.StatusBadRequest},
		{"missing station fields", "/stations", `{"name":"Posto"}`, http.StatusBadRequest},
		{"price without value", "/prices/create_bulk", `{"prices":[{"name":"Comum","station_id":1}]}`, http.StatusBadRequest},
		{"negative price", "/prices/create_bulk", `{"prices":[{"name":"Comum","value":-1,"station_id":1}]}`, http.StatusBadRequest},
		{"unknown station", "/prices/create_bulk", `{"prices":[{"name":"Comum","value":1,"station_id":1}]}`, http.StatusNotFound},
		{"invalid reaction", "/user_reactions", `{"station_id":1,"user_id":1,"reaction":"love"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, "", tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	resp, err := http.Get(srv.URL + "/stations/abc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteReactionNotFound(t *testing.T) {
	_, client := newTestServer(t)
	err := client.DeleteReaction(context.Background(), 12345)
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
