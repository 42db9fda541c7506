package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/rubiojr/postos/internal/config"
	"github.com/rubiojr/postos/internal/server"
	"github.com/rubiojr/postos/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCLI struct {
	t   *testing.T
	cfg config.Config
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	storage, err := store.NewStorage(context.Background(), filepath.Join(t.TempDir(), "postos.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })

	logger := httplog.NewLogger("postos-test", httplog.Options{LogLevel: slog.LevelError, Concise: true})
	srv := httptest.NewServer(server.NewRouter(storage, logger, server.Options{}))
	t.Cleanup(srv.Close)

	return &testCLI{t: t, cfg: config.Config{
		APIURL:  srv.URL,
		UserID:  1,
		Timeout: 5 * time.Second,
		Lang:    "en",
	}}
}

// run executes the CLI and returns what it printed.
func (tc *testCLI) run(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	app := newApp(tc.cfg)
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.RunContext(context.Background(), append([]string{"postos"}, args...))
	return out.String(), err
}

func (tc *testCLI) mustRun(args ...string) string {
	tc.t.Helper()
	out, err := tc.run(args...)
	require.NoError(tc.t, err)
	return out
}

func TestCLI_RegisterEditAndReact(t *testing.T) {
	tc := newTestCLI(t)

	out := tc.mustRun("register",
		"--name", "Posto Central", "--city", "Curitiba", "--state", "pr", "--address", "Rua XV, 100",
		"--price", "Gasolina Comum:5,29", "--price", "Etanol:3,99")
	assert.Contains(t, out, "Station registered with id 1")

	out = tc.mustRun("stations", "--state", "PR")
	assert.Contains(t, out, "[1] Posto Central")
	assert.Contains(t, out, "Gasolina Comum: R$ 5,29")
	assert.Contains(t, out, "Etanol: R$ 3,99")

	out = tc.mustRun("stations", "--state", "SP")
	assert.Contains(t, out, "No stations found.")

	out = tc.mustRun("show", "1")
	assert.Contains(t, out, "#1 Gasolina Comum: R$ 5,29")
	assert.Contains(t, out, "#2 Etanol: R$ 3,99")
	assert.Contains(t, out, "http://maps.google.com/maps?daddr=")

	out = tc.mustRun("edit-prices", "1", "--set", "1=:5,49", "--remove", "2", "--add", "Diesel S10:6,19", "--dry-run")
	assert.Contains(t, out, "Updated: 1")
	assert.Contains(t, out, "Created: 1")
	assert.Contains(t, out, "Removed: 1")
	assert.NotContains(t, out, "Prices saved.")

	out = tc.mustRun("edit-prices", "1", "--set", "1=:5,49", "--remove", "2", "--add", "Diesel S10:6,19")
	assert.Contains(t, out, "Prices saved.")

	out = tc.mustRun("show", "1")
	assert.Contains(t, out, "Gasolina Comum: R$ 5,49")
	assert.Contains(t, out, "Diesel S10: R$ 6,19")
	assert.NotContains(t, out, "Etanol")

	out = tc.mustRun("edit-prices", "1")
	assert.Contains(t, out, "Nothing to save.")

	out = tc.mustRun("like", "1")
	assert.Contains(t, out, "Reaction recorded: like")
	assert.Contains(t, out, "Posto Central: 1 reactions")

	out = tc.mustRun("show", "1")
	assert.Contains(t, out, "You liked this station.")

	out = tc.mustRun("dislike", "1")
	assert.Contains(t, out, "Reaction recorded: dislike")

	out = tc.mustRun("dislike", "1")
	assert.Contains(t, out, "Reaction removed.")
	assert.Contains(t, out, "Posto Central: 0 reactions")
}

func TestCLI_Errors(t *testing.T) {
	tc := newTestCLI(t)

	_, err := tc.run("show", "abc")
	assert.ErrorContains(t, err, "invalid station id")

	_, err = tc.run("show", "99")
	assert.Error(t, err)

	_, err = tc.run("register",
		"--name", "Posto", "--city", "Curitiba", "--state", "XX", "--address", "Rua 1", "--price", "Comum:5")
	assert.ErrorContains(t, err, "unknown state")

	_, err = tc.run("register",
		"--name", "Posto", "--city", "Curitiba", "--state", "PR", "--address", "Rua 1", "--price", "Comum:cinco")
	assert.ErrorContains(t, err, "malformed price")

	out, err := tc.run("stations")
	require.NoError(t, err)
	assert.Contains(t, out, "No stations found.", "a rejected registration must not create the station")

	tc.mustRun("register",
		"--name", "Posto", "--city", "Curitiba", "--state", "PR", "--address", "Rua 1", "--price", "Comum:5")
	_, err = tc.run("edit-prices", "1", "--set", "42=:6")
	assert.ErrorContains(t, err, "unknown price id 42")
}

func TestCLI_States(t *testing.T) {
	tc := newTestCLI(t)
	out := tc.mustRun("cities")
	assert.Contains(t, out, "PR  Paraná (Sul)")
	assert.Contains(t, out, "DF  Distrito Federal (Centro-Oeste)")
}

func TestCLI_DirectionsFromOrigin(t *testing.T) {
	tc := newTestCLI(t)
	tc.mustRun("register",
		"--name", "Posto", "--city", "Curitiba", "--state", "PR", "--address", "Rua 1", "--price", "Comum:5")

	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"0.5","lon":"0.5","display_name":"Rua 1, Curitiba"}]`))
	}))
	t.Cleanup(nominatim.Close)

	out := tc.mustRun("directions", "1", "--lat", "0", "--long", "0", "--nominatim-url", nominatim.URL+"/")
	assert.Contains(t, out, "http://maps.google.com/maps?daddr=")
	assert.Contains(t, out, "km away")
	assert.NotContains(t, out, "N/A")

	out = tc.mustRun("directions", "1")
	assert.NotContains(t, out, "km away")

	_, err := tc.run("directions", "1", "--lat", "0")
	assert.ErrorContains(t, err, "--lat and --long must be given together")

	_, err = tc.run("directions", "1", "--from", "Londrina", "--long", "0")
	assert.ErrorContains(t, err, "use either --from or --lat and --long")
}

func TestSplitPrice(t *testing.T) {
	tests := []struct {
		input string
		label string
		value string
		ok    bool
	}{
		{"Gasolina Comum:5,29", "Gasolina Comum", "5,29", true},
		{"Diesel: S10:6,19", "Diesel: S10", "6,19", true},
		{":5,49", "", "5,49", true},
		{"Etanol", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			label, value, err := splitPrice(tt.input)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.label, label)
			assert.Equal(t, tt.value, value)
		})
	}
}
