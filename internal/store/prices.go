package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rubiojr/postos/pkg/api"
)

const (
	endpointUpdatePrices = "prices/update_bulk"
	endpointCreatePrices = "prices/create_bulk"
	endpointDeletePrices = "prices/delete_bulk"
)

// UpdatePrices changes the name and amount of existing prices. Either every
// price is updated or none is. It reports false when key was already applied.
func (s *Storage) UpdatePrices(ctx context.Context, key string, updates []api.PriceUpdate) (bool, error) {
	return s.idempotent(ctx, endpointUpdatePrices, key, func(tx *sql.Tx) error {
		for _, u := range updates {
			res, err := tx.ExecContext(ctx,
				"UPDATE prices SET name = ?, price = ? WHERE id = ? AND station_id = ?",
				u.Name, u.Value, u.ID, u.StationID)
			if err != nil {
				return fmt.Errorf("error updating price %d: %w", u.ID, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("error updating price %d: %w", u.ID, err)
			}
			if n == 0 {
				return fmt.Errorf("price %d of station %d: %w", u.ID, u.StationID, ErrNotFound)
			}
		}
		return nil
	})
}

// CreatePrices inserts new prices. Every referenced station must exist.
func (s *Storage) CreatePrices(ctx context.Context, key string, prices []api.NewPrice) (bool, error) {
	return s.idempotent(ctx, endpointCreatePrices, key, func(tx *sql.Tx) error {
		for _, p := range prices {
			var exists bool
			err := tx.QueryRowContext(ctx,
				"SELECT EXISTS (SELECT 1 FROM stations WHERE id = ?)", p.StationID).Scan(&exists)
			if err != nil {
				return fmt.Errorf("error checking station %d: %w", p.StationID, err)
			}
			if !exists {
				return fmt.Errorf("station %d: %w", p.StationID, ErrNotFound)
			}

			_, err = tx.ExecContext(ctx,
				"INSERT INTO prices (station_id, name, price) VALUES (?, ?, ?)",
				p.StationID, p.Name, p.Value)
			if err != nil {
				return fmt.Errorf("error inserting price: %w", err)
			}
		}
		return nil
	})
}

// DeletePrices removes prices by id. Unknown ids are ignored.
func (s *Storage) DeletePrices(ctx context.Context, key string, ids []int64) (bool, error) {
	return s.idempotent(ctx, endpointDeletePrices, key, func(tx *sql.Tx) error {
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, "DELETE FROM prices WHERE id = ?", id); err != nil {
				return fmt.Errorf("error deleting price %d: %w", id, err)
			}
		}
		return nil
	})
}
