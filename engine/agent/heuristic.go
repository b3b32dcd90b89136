package agent

import (
	engine "github.com/jason-s-yu/cucumber/engine"
)

// chooseEasy mostly plays at random. Now and then it plays the cheapest card
// that takes the field, or its lowest card when nothing does.
func chooseEasy(v *engine.View, legal []engine.Card, rng *engine.Source, tu *Tuning) engine.Card {
	if rng.Float64() < tu.EasyHeuristicRate {
		return cheapest(v.Hand, v.Field)
	}
	return engine.Choice(rng, legal)
}

// cheapest returns the lowest card >= field, else the lowest card in hand.
func cheapest(hand []engine.Card, field engine.Card) engine.Card {
	low, beat := engine.MaxValue+1, engine.MaxValue+1
	for _, c := range hand {
		if c < low {
			low = c
		}
		if c >= field && c < beat {
			beat = c
		}
	}
	if beat <= engine.MaxValue {
		return beat
	}
	return low
}

// scoreCard rates playing c from the viewer's hand. Higher is better.
func scoreCard(v *engine.View, c engine.Card, tu *Tuning) float64 {
	s := -tu.CucumberWeight * float64(c.Cucumbers())

	// High cards held back are what wins (and loses) the final trick; low
	// cards only hurt when they have to be shed.
	high, skipped := 0, false
	for _, h := range v.Hand {
		if h == c && !skipped {
			skipped = true
			continue
		}
		if int(h) >= tu.HighCard {
			high++
		}
	}
	s += tu.KeepHighWeight * float64(high)

	if v.Field != engine.NoCard && c >= v.Field {
		s += tu.BeatBonus - tu.MarginWeight*float64(c-v.Field)
	}

	if int(c) >= tu.HighCard && unseenHigh(v, tu.HighCard) <= tu.ScarceHighCards {
		s -= tu.ScarcityPenalty
	}
	return s
}

// unseenHigh counts unseen cards at or above the high-card line.
func unseenHigh(v *engine.View, line int) int {
	n := 0
	for c := line; c <= int(engine.MaxValue); c++ {
		n += v.Unseen[c]
	}
	return n
}

// chooseNormal scores every candidate and picks at random among those within
// NormalSlack of the best. noise adds uniform jitter in [-noise, noise] to
// each score; playouts use it to vary the simulated opponents.
func chooseNormal(v *engine.View, legal []engine.Card, rng *engine.Source, tu *Tuning, noise float64) engine.Card {
	scores := make([]float64, len(legal))
	best := 0
	for i, c := range legal {
		scores[i] = scoreCard(v, c, tu)
		if noise > 0 {
			scores[i] += noise * (2*rng.Float64() - 1)
		}
		if scores[i] > scores[best] {
			best = i
		}
	}

	near := make([]engine.Card, 0, len(legal))
	for i, c := range legal {
		if scores[i] >= scores[best]-tu.NormalSlack {
			near = append(near, c)
		}
	}
	return engine.Choice(rng, near)
}
