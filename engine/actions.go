package engine

import "slices"

// ApplyMove validates m against g and returns the resulting state. A move
// that completes a trick also resolves it, and the last trick of a round also
// scores the round and either deals the next one or ends the match, all
// within this one call.
//
// g is never modified. A rejected move returns a *MoveError and leaves rng
// untouched.
func ApplyMove(g *GameState, m Move, cfg Config, rng *Source) (*GameState, error) {
	if err := validateMove(g, m); err != nil {
		return nil, err
	}

	next := g.Clone()
	p := &next.Players[m.Player]
	p.Hand, _ = removeCard(p.Hand, m.Card)
	next.Plays = append(next.Plays, Play{Player: m.Player, Card: m.Card, Discard: m.Discard})
	next.Remaining[m.Card]--

	if m.Discard {
		p.Graveyard = append(p.Graveyard, m.Card)
		next.Graveyard = append(next.Graveyard, m.Card)
	} else {
		next.Field = m.Card
	}

	next.ToAct = next.NextPlayer(m.Player)

	if len(next.Plays) == len(next.Players) {
		next.Phase = PhaseResolvingTrick
		next.endTrick(cfg, rng)
	}
	return next, nil
}

// validateMove checks m against g without changing anything.
func validateMove(g *GameState, m Move) *MoveError {
	if g.Phase != PhaseAwaitingMove {
		return reject(ReasonWrongPhase, "state is in phase %s", g.Phase)
	}
	if m.Player != g.ToAct {
		return reject(ReasonNotYourTurn, "player %d to act, got %d", g.ToAct, m.Player)
	}
	hand := g.Players[m.Player].Hand
	if !m.Card.Valid() || !slices.Contains(hand, m.Card) {
		return reject(ReasonIllegalCard, "card %d not in hand", m.Card)
	}

	forced := MustDiscard(hand, g.Field)
	if m.Discard {
		switch {
		case g.Field == NoCard:
			return reject(ReasonBadDiscard, "cannot discard when opening a trick")
		case !forced:
			return reject(ReasonBadDiscard, "hand holds a card >= field %d", g.Field)
		case m.Card != slices.Min(hand):
			return reject(ReasonBadDiscard, "must discard lowest card %d, got %d", slices.Min(hand), m.Card)
		}
		return nil
	}

	if !slices.Contains(LegalMoves(hand, g.Field), m.Card) {
		return reject(ReasonIllegalCard, "card %d does not beat field %d", m.Card, g.Field)
	}
	if forced {
		return reject(ReasonBadDiscard, "card %d cannot beat field %d and must be discarded", m.Card, g.Field)
	}
	return nil
}

// endTrick resolves a complete trick. The winner leads the next trick; when
// hands are empty the round is scored instead.
func (g *GameState) endTrick(cfg Config, rng *Source) {
	winner := TrickWinner(g.Plays)
	g.Leader = winner
	g.ToAct = winner

	final := false
	for _, p := range g.Players {
		if len(p.Hand) == 0 {
			final = true
		}
	}

	g.LastTrick = &TrickResult{
		Round:  g.Round,
		Trick:  g.Trick,
		Winner: winner,
		Plays:  slices.Clone(g.Plays),
		Final:  final,
	}

	if final {
		g.Phase = PhaseRoundEnd
		g.finalRound(cfg, rng)
		return
	}

	for _, p := range g.Plays {
		if !p.Discard {
			g.Played = append(g.Played, p.Card)
		}
	}
	g.Trick++
	g.Field = NoCard
	g.Plays = nil
	g.Phase = PhaseAwaitingMove
}

// finalRound scores the last trick of a round, then either ends the match or
// deals the next round.
func (g *GameState) finalRound(cfg Config, rng *Source) {
	winner, penalty := FinalTrickPenalty(g.Plays)
	g.Players[winner].Cucumbers += penalty
	g.LastTrick.Penalty = penalty

	if IsGameOver(g.Players, cfg.LossThreshold) {
		// The final trick stays on the table so the end state still accounts
		// for every card.
		g.Phase = PhaseGameEnd
		g.GameOver = true
		g.Losers = LosingPlayers(g.Players, cfg.LossThreshold)
		return
	}

	g.Round++
	g.deal(cfg, rng)
}
