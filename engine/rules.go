package engine

import (
	"fmt"
	"time"
)

// Player count and dealing limits.
const (
	MinPlayers = 2
	MaxPlayers = 6
	HandSize   = 7
)

// Difficulty selects the decision tier used for scripted seats.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d names a known tier.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}

// Config holds the per-match settings.
type Config struct {
	Players       int           `json:"players"`
	TurnTimeout   time.Duration `json:"turnTimeout"` // 0 = unlimited
	LossThreshold int           `json:"lossThreshold"`
	HandSize      int           `json:"handSize"`
	Difficulty    Difficulty    `json:"difficulty"`
	Seed          *uint64       `json:"seed,omitempty"` // nil = pick one at match start
}

// DefaultConfig returns the standard four-player setup.
func DefaultConfig() Config {
	return Config{
		Players:       4,
		LossThreshold: 6,
		HandSize:      HandSize,
		Difficulty:    DifficultyNormal,
	}
}

// handSize returns the effective hand size, treating 0 as HandSize.
func (c *Config) handSize() int {
	if c.HandSize == 0 {
		return HandSize
	}
	return c.HandSize
}

// Validate checks that the config describes a playable match.
func (c *Config) Validate() error {
	if c.Players < MinPlayers || c.Players > MaxPlayers {
		return fmt.Errorf("player count %d outside [%d, %d]", c.Players, MinPlayers, MaxPlayers)
	}
	if c.LossThreshold <= 0 {
		return fmt.Errorf("loss threshold must be positive, got %d", c.LossThreshold)
	}
	if c.handSize() != HandSize {
		return fmt.Errorf("hand size is fixed at %d, got %d", HandSize, c.HandSize)
	}
	if c.TurnTimeout < 0 {
		return fmt.Errorf("turn timeout must not be negative")
	}
	if c.Difficulty != "" && !c.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", c.Difficulty)
	}
	return nil
}
