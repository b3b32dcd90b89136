package agent

import (
	"math"
	"slices"

	engine "github.com/jason-s-yu/cucumber/engine"
	"golang.org/x/sync/errgroup"
)

// chooseHard returns the candidate with the lowest mean playout penalty for
// the viewer. Ties are broken with rng.
func chooseHard(v *engine.View, legal []engine.Card, rng *engine.Source, o *options) engine.Card {
	scores, err := evaluate(v, legal, rng, o)
	if err != nil {
		// A playout only fails if the view was inconsistent; the heuristic
		// still gives a legal answer.
		return chooseNormal(v, legal, rng, &o.tuning, 0)
	}

	bestMean := math.Inf(1)
	for _, s := range scores {
		bestMean = min(bestMean, s.Mean)
	}
	var tied []engine.Card
	for _, s := range scores {
		if s.Mean <= bestMean+1e-9 {
			tied = append(tied, s.Card)
		}
	}
	return engine.Choice(rng, tied)
}

// evaluate runs o.playouts randomized playouts of the rest of the round for
// each candidate. Every playout gets its own Source, seeded from rng before
// any worker starts, so the result does not depend on scheduling.
func evaluate(v *engine.View, legal []engine.Card, rng *engine.Source, o *options) ([]CandidateScore, error) {
	discard := engine.MustDiscard(v.Hand, v.Field)

	seeds := make([][]uint64, len(legal))
	penalties := make([][]int, len(legal))
	for i := range legal {
		seeds[i] = make([]uint64, o.playouts)
		penalties[i] = make([]int, o.playouts)
		for j := range seeds[i] {
			seeds[i][j] = rng.Uint64()
		}
	}

	var g errgroup.Group
	g.SetLimit(o.workers)
	for i, c := range legal {
		d := Decision{Card: c, Discard: discard}
		for j := range seeds[i] {
			g.Go(func() error {
				p, err := playout(v, d, engine.NewSource(seeds[i][j]), o)
				penalties[i][j] = p
				return err
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Rank(legal, penalties), nil
}

// CandidateScore is a candidate's mean penalty over its playouts.
type CandidateScore struct {
	Card engine.Card
	Mean float64
}

// Rank averages penalties[i] for legal[i], keeping the candidate order.
func Rank(legal []engine.Card, penalties [][]int) []CandidateScore {
	out := make([]CandidateScore, len(legal))
	for i, c := range legal {
		sum := 0
		for _, p := range penalties[i] {
			sum += p
		}
		mean := 0.0
		if n := len(penalties[i]); n > 0 {
			mean = float64(sum) / float64(n)
		}
		out[i] = CandidateScore{Card: c, Mean: mean}
	}
	return out
}

// Evaluate runs the hard tier's search and returns every candidate's mean
// penalty in ascending card order, without picking one. It returns nil when
// the viewer has nothing to play.
func Evaluate(view engine.View, rng *engine.Source, opts ...Option) ([]CandidateScore, error) {
	o := newOptions(opts)
	if !view.MyTurn() || len(view.Hand) == 0 {
		return nil, nil
	}
	legal := engine.DistinctValues(engine.LegalMoves(view.Hand, view.Field))
	return evaluate(&view, legal, rng, &o)
}

// simConfig never ends the match, so a playout always stops on a round change.
func simConfig(players int) engine.Config {
	return engine.Config{Players: players, LossThreshold: math.MaxInt32, HandSize: engine.HandSize}
}

// playout plays d, then finishes the current round with the noisy normal
// policy for every seat, and returns the cucumbers the viewer picked up.
func playout(v *engine.View, d Decision, rng *engine.Source, o *options) (int, error) {
	g := determinize(v, rng)
	cfg := simConfig(len(g.Players))
	start, round := g.Players[v.Seat].Cucumbers, g.Round

	g, err := engine.ApplyMove(g, d.Move(v.Seat), cfg, rng)
	if err != nil {
		return 0, err
	}
	for !g.GameOver && g.Round == round {
		seat := g.ToAct
		view := engine.ViewFor(g, seat)
		legal := engine.DistinctValues(engine.LegalMoves(view.Hand, view.Field))
		card := legal[0]
		if len(legal) > 1 {
			card = chooseNormal(&view, legal, rng, &o.tuning, o.noise)
		}
		m := engine.Move{Player: seat, Card: card, Discard: engine.MustDiscard(view.Hand, view.Field)}
		if g, err = engine.ApplyMove(g, m, cfg, rng); err != nil {
			return 0, err
		}
	}
	return g.Players[v.Seat].Cucumbers - start, nil
}

// determinize samples a full GameState consistent with v: the viewer keeps
// their real hand, and every other hand plus the undealt deck are drawn from
// the unseen pool.
func determinize(v *engine.View, rng *engine.Source) *engine.GameState {
	pool := engine.Shuffle(rng, v.UnseenPool())
	g := &engine.GameState{
		Players:   make([]engine.PlayerState, len(v.Seats)),
		ToAct:     v.ToAct,
		Round:     v.Round,
		Trick:     v.Trick,
		Field:     v.Field,
		Graveyard: slices.Clone(v.Graveyard),
		Plays:     slices.Clone(v.Plays),
		Played:    slices.Clone(v.Played),
		Leader:    v.Leader,
		Phase:     engine.PhaseAwaitingMove,
		Remaining: v.Unseen,
	}
	for i, s := range v.Seats {
		ps := engine.PlayerState{
			Cucumbers: s.Cucumbers,
			Graveyard: slices.Clone(s.Graveyard),
		}
		if i == v.Seat {
			ps.Hand = slices.Clone(v.Hand)
		} else {
			n := min(s.HandSize, len(pool))
			ps.Hand = slices.Clone(pool[:n])
			slices.Sort(ps.Hand)
			pool = pool[n:]
		}
		g.Players[i] = ps
	}
	for _, c := range v.Hand {
		g.Remaining[c]++
	}
	g.Deck = slices.Clone(pool)
	return g
}
