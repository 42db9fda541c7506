package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	DefaultIBGEURL = "https://servicodados.ibge.gov.br/api/v1/localidades"

	citiesCacheExpiry  = 24 * time.Hour
	citiesCacheCleanup = time.Hour
)

type Mesorregiao struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
	UF   UF     `json:"UF"`
}

type Microrregiao struct {
	ID          int         `json:"id"`
	Nome        string      `json:"nome"`
	Mesorregiao Mesorregiao `json:"mesorregiao"`
}

// Municipio is a municipality as returned by the IBGE localidades API.
type Municipio struct {
	ID           int           `json:"id"`
	Nome         string        `json:"nome"`
	Microrregiao *Microrregiao `json:"microrregiao"`
}

// IBGE looks up municipalities. Results are kept in memory per state since
// the reference data rarely changes.
type IBGE struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	log        *slog.Logger
}

func NewIBGE(baseURL string, timeout time.Duration, logger *slog.Logger) *IBGE {
	if baseURL == "" {
		baseURL = DefaultIBGEURL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &IBGE{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache.New(citiesCacheExpiry, citiesCacheCleanup),
		log:        logger,
	}
}

// Municipios returns the municipalities of a federative unit.
func (g *IBGE) Municipios(ctx context.Context, uf string) ([]Municipio, error) {
	state, ok := LookupState(uf)
	if !ok {
		return nil, fmt.Errorf("unknown state %q", uf)
	}

	if cached, found := g.cache.Get(state.Sigla); found {
		g.log.Debug("Using cached municipalities", "state", state.Sigla)
		return cached.([]Municipio), nil
	}

	endpoint := fmt.Sprintf("%s/estados/%s/municipios", g.baseURL, url.PathEscape(state.Sigla))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching municipalities: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	var municipios []Municipio
	if err := json.Unmarshal(body, &municipios); err != nil {
		return nil, fmt.Errorf("error unmarshaling JSON: %w", err)
	}

	g.cache.Set(state.Sigla, municipios, cache.DefaultExpiration)
	return municipios, nil
}

// Cities returns the municipality names of a federative unit.
func (g *IBGE) Cities(ctx context.Context, uf string) ([]string, error) {
	municipios, err := g.Municipios(ctx, uf)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(municipios))
	for i, m := range municipios {
		names[i] = m.Nome
	}
	return names, nil
}
