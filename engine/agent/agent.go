// Package agent picks moves for scripted seats.
//
// Every tier is a pure function of (view, difficulty, rng): all randomness
// comes from the caller's Source, so a fixed seed always yields the same
// decision. The hard tier searches by replaying the rest of the round through
// engine.ApplyMove, so simulated outcomes follow the live rules exactly.
package agent

import (
	engine "github.com/jason-s-yu/cucumber/engine"
)

// Decision is the card a seat should put down.
type Decision struct {
	Card    engine.Card
	Discard bool
}

// Move converts the decision into an engine move for seat.
func (d Decision) Move(seat int) engine.Move {
	return engine.Move{Player: seat, Card: d.Card, Discard: d.Discard}
}

type options struct {
	playouts int
	workers  int
	noise    float64
	tuning   Tuning
}

// Option configures Choose.
type Option func(*options)

// WithPlayouts sets the number of playouts per candidate in the hard tier.
func WithPlayouts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.playouts = n
		}
	}
}

// WithWorkers sets how many playouts run concurrently.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithNoise sets the score jitter applied to the policy used inside playouts.
func WithNoise(noise float64) Option {
	return func(o *options) {
		if noise >= 0 {
			o.noise = noise
		}
	}
}

// WithTuning replaces DefaultTuning.
func WithTuning(t Tuning) Option {
	return func(o *options) { o.tuning = t }
}

const (
	DefaultPlayouts = 64
	DefaultWorkers  = 4
	DefaultNoise    = 0.5
)

func newOptions(opts []Option) options {
	o := options{
		playouts: DefaultPlayouts,
		workers:  DefaultWorkers,
		noise:    DefaultNoise,
		tuning:   DefaultTuning,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Choose picks a legal move for the seat that owns view. It returns false
// when the seat has nothing to play: an empty hand, or it is not its turn.
func Choose(view engine.View, level engine.Difficulty, rng *engine.Source, opts ...Option) (Decision, bool) {
	o := newOptions(opts)
	if !view.MyTurn() || len(view.Hand) == 0 {
		return Decision{}, false
	}
	legal := engine.DistinctValues(engine.LegalMoves(view.Hand, view.Field))
	discard := engine.MustDiscard(view.Hand, view.Field)
	if len(legal) == 1 {
		return Decision{Card: legal[0], Discard: discard}, true
	}

	var card engine.Card
	switch level {
	case engine.DifficultyEasy:
		card = chooseEasy(&view, legal, rng, &o.tuning)
	case engine.DifficultyHard:
		card = chooseHard(&view, legal, rng, &o)
	default:
		card = chooseNormal(&view, legal, rng, &o.tuning, 0)
	}
	return Decision{Card: card, Discard: discard}, true
}
