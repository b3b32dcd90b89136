// internal/database/database.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jason-s-yu/cucumber/service/internal/models"
)

// ErrNoMatch is returned by Match when no record exists for a room.
var ErrNoMatch = errors.New("database: match not found")

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	room_id     TEXT PRIMARY KEY,
	seats       JSONB NOT NULL,
	cucumbers   JSONB NOT NULL,
	losers      JSONB NOT NULL,
	rounds      INTEGER NOT NULL,
	version     BIGINT NOT NULL,
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
)`

// Archive stores finished matches in Postgres.
type Archive struct {
	pool *pgxpool.Pool
}

// Connect opens a pool for url and creates the schema if needed.
func Connect(ctx context.Context, url string) (*Archive, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	a := &Archive{pool: pool}
	if err := a.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return a, nil
}

// EnsureSchema creates the matches table.
func (a *Archive) EnsureSchema(ctx context.Context) error {
	if _, err := a.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create matches table: %w", err)
	}
	return nil
}

// Close releases the pool.
func (a *Archive) Close() { a.pool.Close() }

// RecordMatch upserts the summary of a finished match. Recording the same
// room twice keeps the later version.
func (a *Archive) RecordMatch(ctx context.Context, rec models.MatchRecord) error {
	seats, err := json.Marshal(rec.Seats)
	if err != nil {
		return fmt.Errorf("marshal seats: %w", err)
	}
	cucumbers, err := json.Marshal(rec.Cucumbers)
	if err != nil {
		return fmt.Errorf("marshal cucumbers: %w", err)
	}
	losers, err := json.Marshal(rec.Losers)
	if err != nil {
		return fmt.Errorf("marshal losers: %w", err)
	}

	_, err = a.pool.Exec(ctx, `
		INSERT INTO matches (room_id, seats, cucumbers, losers, rounds, version, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (room_id) DO UPDATE SET
			seats = EXCLUDED.seats,
			cucumbers = EXCLUDED.cucumbers,
			losers = EXCLUDED.losers,
			rounds = EXCLUDED.rounds,
			version = EXCLUDED.version,
			started_at = EXCLUDED.started_at,
			finished_at = EXCLUDED.finished_at
		WHERE matches.version <= EXCLUDED.version`,
		rec.RoomID, seats, cucumbers, losers, rec.Rounds, rec.Version, rec.StartedAt, rec.FinishedAt)
	if err != nil {
		return fmt.Errorf("insert match %s: %w", rec.RoomID, err)
	}
	return nil
}

// Match loads the archived record for roomID.
func (a *Archive) Match(ctx context.Context, roomID string) (models.MatchRecord, error) {
	var (
		rec                      models.MatchRecord
		seats, cucumbers, losers []byte
	)
	err := a.pool.QueryRow(ctx, `
		SELECT room_id, seats, cucumbers, losers, rounds, version, started_at, finished_at
		FROM matches WHERE room_id = $1`, roomID).
		Scan(&rec.RoomID, &seats, &cucumbers, &losers, &rec.Rounds, &rec.Version, &rec.StartedAt, &rec.FinishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.MatchRecord{}, ErrNoMatch
	}
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("select match %s: %w", roomID, err)
	}
	if err := json.Unmarshal(seats, &rec.Seats); err != nil {
		return models.MatchRecord{}, fmt.Errorf("decode seats: %w", err)
	}
	if err := json.Unmarshal(cucumbers, &rec.Cucumbers); err != nil {
		return models.MatchRecord{}, fmt.Errorf("decode cucumbers: %w", err)
	}
	if err := json.Unmarshal(losers, &rec.Losers); err != nil {
		return models.MatchRecord{}, fmt.Errorf("decode losers: %w", err)
	}
	return rec, nil
}
