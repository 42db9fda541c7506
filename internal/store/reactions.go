package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rubiojr/postos/pkg/api"
)

var ErrInvalidReaction = errors.New("reaction must be like or dislike")

// MyReactions returns the reactions recorded by a user, oldest first.
func (s *Storage) MyReactions(ctx context.Context, userID int64) ([]api.Reaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, station_id, reaction, created_at, updated_at
		FROM reactions
		WHERE user_id = ?
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying reactions: %w", err)
	}
	defer rows.Close()

	reactions := []api.Reaction{}
	for rows.Next() {
		var r api.Reaction
		if err := rows.Scan(&r.ID, &r.UserID, &r.StationID, &r.Kind, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning reaction: %w", err)
		}
		reactions = append(reactions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error: %w", err)
	}
	return reactions, nil
}

// CreateReaction records a user's reaction to a station. A user has at most
// one reaction per station, so an existing one is replaced.
func (s *Storage) CreateReaction(ctx context.Context, in api.NewReaction) (*api.Reaction, error) {
	if !in.Kind.Valid() {
		return nil, ErrInvalidReaction
	}

	var r api.Reaction
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT 1 FROM stations WHERE id = ?)", in.StationID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("error checking station %d: %w", in.StationID, err)
		}
		if !exists {
			return fmt.Errorf("station %d: %w", in.StationID, ErrNotFound)
		}

		ts := now()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO reactions (user_id, station_id, reaction, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (user_id, station_id) DO UPDATE SET
				reaction = excluded.reaction,
				updated_at = excluded.updated_at
		`, in.UserID, in.StationID, string(in.Kind), ts, ts)
		if err != nil {
			return fmt.Errorf("error inserting reaction: %w", err)
		}

		err = tx.QueryRowContext(ctx, `
			SELECT id, user_id, station_id, reaction, created_at, updated_at
			FROM reactions
			WHERE user_id = ? AND station_id = ?
		`, in.UserID, in.StationID).Scan(&r.ID, &r.UserID, &r.StationID, &r.Kind, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error reading reaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteReaction removes a reaction, or returns ErrNotFound.
func (s *Storage) DeleteReaction(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM reactions WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("error deleting reaction %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("error deleting reaction %d: %w", id, err)
		}
		if n == 0 {
			return fmt.Errorf("reaction %d: %w", id, ErrNotFound)
		}
		return nil
	})
}
