// internal/game/room.go
package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/cucumber/engine"
	"github.com/jason-s-yu/cucumber/service/internal/cache"
	"github.com/jason-s-yu/cucumber/service/internal/models"
)

// Rooms accept loss thresholds in this range. The engine itself takes any
// positive threshold, which local tables use for short matches.
const (
	MinLossThreshold = 4
	MaxLossThreshold = 7
)

// CreateRoom deals a new match and stores it at version 1. If bots lead the
// first trick their opening moves are played straight away, each one a
// version later. Player count defaults to the number of seats.
func (c *Coordinator) CreateRoom(ctx context.Context, spec models.RoomSpec) (*models.Snapshot, error) {
	cfg := spec.Config
	if cfg.Players == 0 {
		cfg.Players = len(spec.Seats)
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = engine.DifficultyNormal
	}
	if cfg.LossThreshold == 0 {
		cfg.LossThreshold = engine.DefaultConfig().LossThreshold
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRoom, err)
	}
	if cfg.LossThreshold < MinLossThreshold || cfg.LossThreshold > MaxLossThreshold {
		return nil, fmt.Errorf("%w: loss threshold %d outside [%d, %d]", ErrBadRoom, cfg.LossThreshold, MinLossThreshold, MaxLossThreshold)
	}
	seats, err := normalizeSeats(spec.Seats, cfg.Players)
	if err != nil {
		return nil, err
	}

	seed := rand.Uint64()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	rng := engine.NewSource(seed)
	g, err := engine.NewGame(cfg, rng)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRoom, err)
	}

	roomID := spec.RoomID
	if roomID == "" {
		roomID = uuid.NewString()
	}
	now := c.opts.Now()
	snap := &models.Snapshot{
		RoomID:    roomID,
		Config:    cfg,
		Seats:     seats,
		CreatedAt: now,
	}
	steps := []step{{version: 1, state: g}}
	steps = append(steps, c.playBots(snap, g, rng, 1)...)
	last := steps[len(steps)-1]

	snap.State = last.state
	snap.RNG = rng.State()
	snap.Version = last.version
	snap.UpdatedAt = c.opts.Now()

	b, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot %s: %w", roomID, err)
	}
	created, err := c.store.SetNX(ctx, cache.RoomKey(roomID), b, 0)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrRoomExists
	}

	c.log.WithField("room", roomID).WithField("version", snap.Version).Info("room created")
	c.broadcast(ctx, snap, steps)
	return snap, nil
}

// normalizeSeats checks the seat list and names unnamed bots.
func normalizeSeats(in []models.Seat, players int) ([]models.Seat, error) {
	if len(in) != players {
		return nil, fmt.Errorf("%w: %d seats for %d players", ErrBadRoom, len(in), players)
	}
	seats := make([]models.Seat, len(in))
	seen := make(map[string]bool, len(in))
	humans := 0
	for i, s := range in {
		switch s.Kind {
		case models.SeatHuman:
			humans++
			if s.ActorID == "" {
				return nil, fmt.Errorf("%w: seat %d has no actor id", ErrBadRoom, i)
			}
		case models.SeatBot:
			if s.ActorID == "" {
				s.ActorID = fmt.Sprintf("bot-%d", i)
			}
		default:
			return nil, fmt.Errorf("%w: seat %d has kind %q", ErrBadRoom, i, s.Kind)
		}
		if seen[s.ActorID] {
			return nil, fmt.Errorf("%w: actor %s seated twice", ErrBadRoom, s.ActorID)
		}
		seen[s.ActorID] = true
		seats[i] = s
	}
	if humans == 0 {
		return nil, fmt.Errorf("%w: at least one human seat is required", ErrBadRoom)
	}
	return seats, nil
}

// View returns actorID's current view of a room, for a client that has just
// connected or was told its version is stale.
func (c *Coordinator) View(ctx context.Context, roomID, actorID string) (models.ViewMessage, error) {
	snap, err := c.load(ctx, roomID)
	if err != nil {
		return models.ViewMessage{}, err
	}
	seat := snap.SeatOf(actorID)
	if seat < 0 {
		return models.ViewMessage{}, ErrNotSeated
	}
	return NewViewMessage(roomID, snap.Version, snap.State, seat)
}

// Snapshot returns the stored snapshot for roomID, hidden hands included.
func (c *Coordinator) Snapshot(ctx context.Context, roomID string) (*models.Snapshot, error) {
	snap, err := c.load(ctx, roomID)
	if err != nil && !errors.Is(err, ErrRoomNotFound) {
		return nil, fmt.Errorf("load room %s: %w", roomID, err)
	}
	return snap, err
}
