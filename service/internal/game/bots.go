// internal/game/bots.go
package game

import (
	engine "github.com/jason-s-yu/cucumber/engine"
	"github.com/jason-s-yu/cucumber/engine/agent"
	"github.com/jason-s-yu/cucumber/service/internal/models"
)

// step is one accepted move: the state it produced and the version it was
// stored under.
type step struct {
	version int64
	state   *engine.GameState
}

// playBots plays every consecutive bot turn starting from g, drawing all
// randomness from rng. Each bot move is its own step, one version after the
// last. Assumes the room lock is held by the caller.
func (c *Coordinator) playBots(snap *models.Snapshot, g *engine.GameState, rng *engine.Source, version int64) []step {
	var steps []step
	for !g.GameOver && snap.Seats[g.ToAct].IsBot() {
		seat := g.ToAct
		d, ok := agent.Choose(engine.ViewFor(g, seat), snap.Config.Difficulty, rng, agent.WithPlayouts(c.opts.BotPlayouts))
		if !ok {
			c.log.WithField("room", snap.RoomID).Errorf("bot seat %d has no move", seat)
			break
		}
		move := d.Move(seat)
		move.At = c.opts.Now()
		next, err := engine.ApplyMove(g, move, snap.Config, rng)
		if err != nil {
			// The agent only ever picks legal cards; stop rather than loop.
			c.log.WithError(err).WithField("room", snap.RoomID).Errorf("bot seat %d move rejected", seat)
			break
		}
		version++
		steps = append(steps, step{version: version, state: next})
		g = next
	}
	return steps
}
