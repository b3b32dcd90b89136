package engine

import (
	"fmt"
	"time"
)

// Deck composition.
const (
	MinValue       Card = 1
	MaxValue       Card = 15
	CopiesPerValue      = 7
	DeckSize            = int(MaxValue) * CopiesPerValue // 105
)

// Card is a card value in [MinValue, MaxValue]. Cards with the same value are
// interchangeable, so the value is the whole identity.
type Card int8

// NoCard marks an empty field.
const NoCard Card = 0

// Valid reports whether c is a real card value.
func (c Card) Valid() bool { return c >= MinValue && c <= MaxValue }

// Cucumbers returns the penalty weight printed on a card.
//   - 1 → 0
//   - 2–5 → 1
//   - 6–9 → 2
//   - 10–11 → 3
//   - 12–14 → 4
//   - 15 → 5
func (c Card) Cucumbers() int {
	switch {
	case c <= 1:
		return 0
	case c <= 5:
		return 1
	case c <= 9:
		return 2
	case c <= 11:
		return 3
	case c <= 14:
		return 4
	}
	return 5
}

// ---------------------------------------------------------------------------
// Phase
// ---------------------------------------------------------------------------

// Phase tags where a GameState sits in the trick/round/match cycle.
// Only PhaseAwaitingMove is observable between calls unless the match is over;
// the resolving phases are passed through inside a single ApplyMove.
type Phase uint8

const (
	PhaseAwaitingMove   Phase = iota // 0
	PhaseResolvingTrick              // 1
	PhaseRoundEnd                    // 2
	PhaseGameEnd                     // 3
)

var phaseNames = [...]string{"awaiting-move", "resolving-trick", "round-end", "game-end"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// MarshalText encodes the phase by name so persisted snapshots stay readable.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText accepts the names produced by MarshalText.
func (p *Phase) UnmarshalText(b []byte) error {
	for i, name := range phaseNames {
		if name == string(b) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

// ---------------------------------------------------------------------------
// Moves
// ---------------------------------------------------------------------------

// Move is one player action: a card played to the field, or a card shed to
// the graveyard because nothing in hand could beat the field.
type Move struct {
	Player  int       `json:"player"`
	Card    Card      `json:"card"`
	Discard bool      `json:"discard"`
	At      time.Time `json:"at"`
}

// Play records an action taken inside the open trick.
type Play struct {
	Player  int  `json:"player"`
	Card    Card `json:"card"`
	Discard bool `json:"discard,omitempty"`
}

// TrickResult summarizes the most recently closed trick.
type TrickResult struct {
	Round   int    `json:"round"`
	Trick   int    `json:"trick"`
	Winner  int    `json:"winner"`
	Plays   []Play `json:"plays"`
	Final   bool   `json:"final"`
	Penalty int    `json:"penalty"` // only set when Final
}

// ---------------------------------------------------------------------------
// Rejections
// ---------------------------------------------------------------------------

// Reason is the tag carried by a rejected move.
type Reason string

const (
	ReasonWrongPhase  Reason = "wrong-phase"
	ReasonNotYourTurn Reason = "not-your-turn"
	ReasonIllegalCard Reason = "illegal-card"
	ReasonBadDiscard  Reason = "bad-discard"
)

// MoveError is returned by ApplyMove when a move violates the rules. The
// input state is never modified, so the caller may retry with a corrected move.
type MoveError struct {
	Reason Reason
	Detail string
}

func (e *MoveError) Error() string {
	if e.Detail == "" {
		return string(e.Reason)
	}
	return string(e.Reason) + ": " + e.Detail
}

func reject(reason Reason, format string, args ...any) *MoveError {
	return &MoveError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
