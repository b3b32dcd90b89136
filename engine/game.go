// Package engine implements the Five Cucumbers card game rules.
//
// Every transition is a pure function of (state, move, config, rng): the
// input GameState is never modified and all randomness comes from the Source
// the caller threads through, so a match can be replayed from its seed.
package engine

import (
	"slices"
)

// PlayerState holds one seat's hand, penalty total and personal graveyard.
type PlayerState struct {
	Hand      []Card `json:"hand"` // sorted ascending
	Cucumbers int    `json:"cucumbers"`
	Graveyard []Card `json:"graveyard"`
}

// GameState holds the complete, authoritative state of a match.
type GameState struct {
	Players   []PlayerState `json:"players"`
	ToAct     int           `json:"toAct"`
	Round     int           `json:"round"`
	Trick     int           `json:"trick"`
	Field     Card          `json:"field"`
	Graveyard []Card        `json:"graveyard"` // every discard this round, public
	Plays     []Play        `json:"plays"`     // the open trick, in play order
	Played    []Card        `json:"played"`    // field cards of closed tricks this round
	Leader    int           `json:"leader"`
	GameOver  bool          `json:"gameOver"`
	Losers    []int         `json:"losers,omitempty"`
	Deck      []Card        `json:"deck"` // undealt cards
	Phase     Phase         `json:"phase"`

	// Remaining counts, per value, the copies not yet played or discarded this
	// round. Index 0 is unused.
	Remaining [MaxValue + 1]int `json:"remaining"`

	LastTrick *TrickResult `json:"lastTrick,omitempty"`
}

// ---------------------------------------------------------------------------
// NewGame and deal
// ---------------------------------------------------------------------------

// NewGame validates cfg and deals the first round.
func NewGame(cfg Config, rng *Source) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &GameState{
		Players: make([]PlayerState, cfg.Players),
		Round:   1,
	}
	g.deal(cfg, rng)
	return g, nil
}

// deal shuffles a fresh deck, hands out equal hands and picks a leader.
// Cucumber totals are preserved.
func (g *GameState) deal(cfg Config, rng *Source) {
	deck := Shuffle(rng, NewDeck())
	n := len(g.Players)
	size := cfg.handSize()

	for p := range g.Players {
		g.Players[p].Hand = make([]Card, 0, size)
		g.Players[p].Graveyard = nil
	}
	// Deal one at a time round the table, like a real dealer.
	top := 0
	for c := 0; c < size; c++ {
		for p := 0; p < n; p++ {
			g.Players[p].Hand = append(g.Players[p].Hand, deck[top])
			top++
		}
	}
	for p := range g.Players {
		slices.Sort(g.Players[p].Hand)
	}
	g.Deck = deck[top:]

	for v := MinValue; v <= MaxValue; v++ {
		g.Remaining[v] = CopiesPerValue
	}
	g.Trick = 1
	g.Field = NoCard
	g.Graveyard = nil
	g.Plays = nil
	g.Played = nil
	g.Leader = rng.IntN(n)
	g.ToAct = g.Leader
	g.Phase = PhaseAwaitingMove
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// NumPlayers returns the number of seats.
func (g *GameState) NumPlayers() int { return len(g.Players) }

// IsTerminal returns true when the match is over.
func (g *GameState) IsTerminal() bool { return g.Phase == PhaseGameEnd }

// NextPlayer returns the seat after p in turn order.
func (g *GameState) NextPlayer(p int) int { return (p + 1) % len(g.Players) }

// Legal returns the legal cards for the player to act and whether they must
// be discarded.
func (g *GameState) Legal() ([]Card, bool) {
	if g.Phase != PhaseAwaitingMove {
		return nil, false
	}
	hand := g.Players[g.ToAct].Hand
	return LegalMoves(hand, g.Field), MustDiscard(hand, g.Field)
}

// CardCount returns the number of cards accounted for this round: hands,
// the shared graveyard, the open trick's field plays, closed tricks and the
// undealt deck. It equals DeckSize after every transition.
func (g *GameState) CardCount() int {
	n := len(g.Graveyard) + len(g.Played) + len(g.Deck)
	for _, p := range g.Players {
		n += len(p.Hand)
	}
	for _, p := range g.Plays {
		if !p.Discard {
			n++
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// Clone
// ---------------------------------------------------------------------------

// Clone returns a deep copy of g. Transitions work on clones so that the
// caller's state survives a rejected move untouched.
func (g *GameState) Clone() *GameState {
	c := *g
	c.Players = make([]PlayerState, len(g.Players))
	for i, p := range g.Players {
		c.Players[i] = PlayerState{
			Hand:      slices.Clone(p.Hand),
			Cucumbers: p.Cucumbers,
			Graveyard: slices.Clone(p.Graveyard),
		}
	}
	c.Graveyard = slices.Clone(g.Graveyard)
	c.Plays = slices.Clone(g.Plays)
	c.Played = slices.Clone(g.Played)
	c.Losers = slices.Clone(g.Losers)
	c.Deck = slices.Clone(g.Deck)
	if g.LastTrick != nil {
		lt := *g.LastTrick
		lt.Plays = slices.Clone(g.LastTrick.Plays)
		c.LastTrick = &lt
	}
	return &c
}
