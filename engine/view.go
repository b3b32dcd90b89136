package engine

import "slices"

// SeatView is the public information about one seat.
type SeatView struct {
	Seat      int    `json:"seat"`
	HandSize  int    `json:"handSize"`
	Cucumbers int    `json:"cucumbers"`
	Graveyard []Card `json:"graveyard"`
}

// View is a GameState projected for a single seat: the seat's own hand plus
// everything public. Other hands appear only as sizes.
type View struct {
	Seat      int          `json:"seat"`
	Hand      []Card       `json:"hand"`
	Seats     []SeatView   `json:"seats"`
	ToAct     int          `json:"toAct"`
	Leader    int          `json:"leader"`
	Round     int          `json:"round"`
	Trick     int          `json:"trick"`
	Field     Card         `json:"field"`
	Plays     []Play       `json:"plays"`
	Played    []Card       `json:"played"`
	Graveyard []Card       `json:"graveyard"`
	DeckSize  int          `json:"deckSize"`
	Phase     Phase        `json:"phase"`
	GameOver  bool         `json:"gameOver"`
	Losers    []int        `json:"losers,omitempty"`
	LastTrick *TrickResult `json:"lastTrick,omitempty"`

	// Unseen counts, per value, the copies the viewer has not seen: not in
	// their hand, not played and not discarded. Index 0 is unused.
	Unseen [MaxValue + 1]int `json:"unseen"`
}

// ViewFor builds the view of g for seat. The view shares no memory with g.
func ViewFor(g *GameState, seat int) View {
	v := View{
		Seat:      seat,
		Hand:      slices.Clone(g.Players[seat].Hand),
		Seats:     make([]SeatView, len(g.Players)),
		ToAct:     g.ToAct,
		Leader:    g.Leader,
		Round:     g.Round,
		Trick:     g.Trick,
		Field:     g.Field,
		Plays:     slices.Clone(g.Plays),
		Played:    slices.Clone(g.Played),
		Graveyard: slices.Clone(g.Graveyard),
		DeckSize:  len(g.Deck),
		Phase:     g.Phase,
		GameOver:  g.GameOver,
		Losers:    slices.Clone(g.Losers),
		Unseen:    g.Remaining,
	}
	for i, p := range g.Players {
		v.Seats[i] = SeatView{
			Seat:      i,
			HandSize:  len(p.Hand),
			Cucumbers: p.Cucumbers,
			Graveyard: slices.Clone(p.Graveyard),
		}
	}
	for _, c := range v.Hand {
		v.Unseen[c]--
	}
	if g.LastTrick != nil {
		lt := *g.LastTrick
		lt.Plays = slices.Clone(g.LastTrick.Plays)
		v.LastTrick = &lt
	}
	return v
}

// MyTurn reports whether the viewer is the player to act.
func (v *View) MyTurn() bool {
	return v.Phase == PhaseAwaitingMove && v.ToAct == v.Seat
}

// UnseenPool expands Unseen into a flat list of card values, ascending.
func (v *View) UnseenPool() []Card {
	var pool []Card
	for c := MinValue; c <= MaxValue; c++ {
		for i := 0; i < v.Unseen[c]; i++ {
			pool = append(pool, c)
		}
	}
	return pool
}
