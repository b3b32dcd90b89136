// internal/models/models.go
package models

import (
	"time"

	engine "github.com/jason-s-yu/cucumber/engine"
)

// SeatKind tells whether a seat is played by a person or by the decision engine.
type SeatKind string

const (
	SeatHuman SeatKind = "human"
	SeatBot   SeatKind = "bot"
)

// Seat binds an engine player index to a participant.
type Seat struct {
	ActorID string   `json:"actorId"`
	Kind    SeatKind `json:"kind"`
	Name    string   `json:"name,omitempty"`
}

// IsBot reports whether the seat is driven by the decision engine.
func (s Seat) IsBot() bool { return s.Kind == SeatBot }

// Snapshot is the persisted form of a room: the authoritative game state plus
// everything needed to resume it, including the random source position.
type Snapshot struct {
	RoomID    string            `json:"roomId"`
	State     *engine.GameState `json:"state"`
	Config    engine.Config     `json:"config"`
	Seats     []Seat            `json:"seats"`
	RNG       uint64            `json:"rng"`
	Version   int64             `json:"version"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// SeatOf returns the engine index for actorID, or -1 if the actor is not seated.
func (s *Snapshot) SeatOf(actorID string) int {
	for i, seat := range s.Seats {
		if seat.ActorID == actorID {
			return i
		}
	}
	return -1
}

// Action is the card a participant wants to put down.
type Action struct {
	Card    engine.Card `json:"card"`
	Discard bool        `json:"discard"`
}

// MoveRequest is a single move submission.
type MoveRequest struct {
	RoomID           string `json:"roomId"`
	ActorID          string `json:"actorId"`
	IdempotencyToken string `json:"idempotencyToken"`
	BelievedVersion  int64  `json:"believedVersion"`
	Action           Action `json:"action"`
}

// MoveResponse is the body returned for a submission.
type MoveResponse struct {
	Code         string `json:"code"`
	NewVersion   int64  `json:"newVersion,omitempty"`
	Deduplicated bool   `json:"deduplicated,omitempty"`
	Reason       string `json:"reason,omitempty"` // engine reason on invalid-move
	Message      string `json:"message,omitempty"`
}

// ViewMessage is what a participant receives after every accepted move.
type ViewMessage struct {
	RoomID  string      `json:"roomId"`
	Version int64       `json:"version"`
	State   engine.View `json:"state"`
	Hash    string      `json:"hash"`
}

// RoomSpec describes a room to create.
type RoomSpec struct {
	RoomID string        `json:"roomId,omitempty"` // generated when empty
	Config engine.Config `json:"config"`
	Seats  []Seat        `json:"seats"`
}

// MatchRecord is the archived summary of a finished match.
type MatchRecord struct {
	RoomID     string    `json:"roomId"`
	Seats      []Seat    `json:"seats"`
	Cucumbers  []int     `json:"cucumbers"`
	Losers     []int     `json:"losers"`
	Rounds     int       `json:"rounds"`
	Version    int64     `json:"version"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}
