package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/patrickmn/go-cache"
	"github.com/rubiojr/postos/pkg/api"
)

const stationsCacheKey = "stations"

func stationCacheKey(id int64) string {
	return fmt.Sprintf("station:%d", id)
}

// ListStations returns every station with its prices, ordered by id.
func (s *Storage) ListStations(ctx context.Context) ([]api.Station, error) {
	if cached, found := s.cache.Get(stationsCacheKey); found {
		s.log.Debug("Using cached data", "key", stationsCacheKey)
		return cloneStations(cached.([]api.Station)), nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.city, s.state, s.address,
			(SELECT COUNT(*) FROM reactions r WHERE r.station_id = s.id)
		FROM stations s
		ORDER BY s.id
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying stations: %w", err)
	}
	defer rows.Close()

	stations := []api.Station{}
	index := map[int64]int{}
	for rows.Next() {
		st := api.Station{Prices: []api.Price{}}
		if err := rows.Scan(&st.ID, &st.Name, &st.City, &st.State, &st.Address, &st.TotalReactions); err != nil {
			return nil, fmt.Errorf("error scanning station: %w", err)
		}
		index[st.ID] = len(stations)
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error: %w", err)
	}

	all, err := s.queryPrices(ctx, "SELECT id, station_id, name, price FROM prices ORDER BY id")
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if i, ok := index[p.StationID]; ok {
			stations[i].Prices = append(stations[i].Prices, p)
		}
	}

	s.cache.Set(stationsCacheKey, stations, cache.DefaultExpiration)
	return cloneStations(stations), nil
}

// GetStation returns a station with its prices, or ErrNotFound.
func (s *Storage) GetStation(ctx context.Context, id int64) (*api.Station, error) {
	key := stationCacheKey(id)
	if cached, found := s.cache.Get(key); found {
		s.log.Debug("Using cached data", "key", key)
		return cloneStation(*cached.(*api.Station)), nil
	}

	st := api.Station{Prices: []api.Price{}}
	err := s.db.QueryRowContext(ctx, `
		SELECT s.id, s.name, s.city, s.state, s.address,
			(SELECT COUNT(*) FROM reactions r WHERE r.station_id = s.id)
		FROM stations s
		WHERE s.id = ?
	`, id).Scan(&st.ID, &st.Name, &st.City, &st.State, &st.Address, &st.TotalReactions)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("station %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying station: %w", err)
	}

	ps, err := s.queryPrices(ctx, "SELECT id, station_id, name, price FROM prices WHERE station_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	st.Prices = append(st.Prices, ps...)

	s.cache.Set(key, &st, cache.DefaultExpiration)
	return cloneStation(st), nil
}

// CreateStation inserts a station without prices.
func (s *Storage) CreateStation(ctx context.Context, in api.NewStation) (*api.Station, error) {
	var id int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO stations (name, city, state, address, created_at) VALUES (?, ?, ?, ?, ?)",
			in.Name, in.City, in.State, in.Address, now())
		if err != nil {
			return fmt.Errorf("error inserting station: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("error reading station id: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &api.Station{
		ID:      id,
		Name:    in.Name,
		City:    in.City,
		State:   in.State,
		Address: in.Address,
		Prices:  []api.Price{},
	}, nil
}

// Cached stations are shared, callers get their own copy.
func cloneStation(st api.Station) *api.Station {
	st.Prices = slices.Clone(st.Prices)
	return &st
}

func cloneStations(stations []api.Station) []api.Station {
	out := make([]api.Station, len(stations))
	for i, st := range stations {
		out[i] = *cloneStation(st)
	}
	return out
}

func (s *Storage) queryPrices(ctx context.Context, query string, args ...any) ([]api.Price, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying prices: %w", err)
	}
	defer rows.Close()

	var out []api.Price
	for rows.Next() {
		var p api.Price
		if err := rows.Scan(&p.ID, &p.StationID, &p.Name, &p.Price); err != nil {
			return nil, fmt.Errorf("error scanning price: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error: %w", err)
	}
	return out, nil
}
