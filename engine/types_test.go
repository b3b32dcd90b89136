package engine

import (
	"encoding/json"
	"testing"
)

// TestCucumberBands verifies every value maps to its printed cucumber count.
func TestCucumberBands(t *testing.T) {
	want := map[Card]int{
		1: 0,
		2: 1, 3: 1, 4: 1, 5: 1,
		6: 2, 7: 2, 8: 2, 9: 2,
		10: 3, 11: 3,
		12: 4, 13: 4, 14: 4,
		15: 5,
	}
	for c := MinValue; c <= MaxValue; c++ {
		if got := c.Cucumbers(); got != want[c] {
			t.Errorf("Card(%d).Cucumbers() = %d, want %d", c, got, want[c])
		}
	}
}

func TestCardValid(t *testing.T) {
	for _, c := range []Card{NoCard, -1, 16} {
		if c.Valid() {
			t.Errorf("Card(%d).Valid() = true", c)
		}
	}
	if !Card(1).Valid() || !Card(15).Valid() {
		t.Error("1 and 15 must be valid")
	}
}

// TestPhaseText verifies phases round-trip through their names.
func TestPhaseText(t *testing.T) {
	for p := PhaseAwaitingMove; p <= PhaseGameEnd; p++ {
		b, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal %v: %v", p, err)
		}
		var got Phase
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if got != p {
			t.Errorf("round trip %v → %s → %v", p, b, got)
		}
	}
	var p Phase
	if err := p.UnmarshalText([]byte("lobby")); err == nil {
		t.Error("expected error for unknown phase name")
	}
}

func TestMoveErrorMessage(t *testing.T) {
	err := reject(ReasonNotYourTurn, "player %d to act", 2)
	if err.Error() != "not-your-turn: player 2 to act" {
		t.Errorf("Error() = %q", err.Error())
	}
	bare := &MoveError{Reason: ReasonWrongPhase}
	if bare.Error() != "wrong-phase" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

func TestConfigValidate(t *testing.T) {
	ok := DefaultConfig()
	if err := ok.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cases := map[string]func(c *Config){
		"too few players":  func(c *Config) { c.Players = 1 },
		"too many players": func(c *Config) { c.Players = 7 },
		"zero threshold":   func(c *Config) { c.LossThreshold = 0 },
		"hand size":        func(c *Config) { c.HandSize = 5 },
		"negative timeout": func(c *Config) { c.TurnTimeout = -1 },
		"difficulty":       func(c *Config) { c.Difficulty = "impossible" },
	}
	for name, mutate := range cases {
		c := DefaultConfig()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
