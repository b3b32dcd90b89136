// internal/game/table.go
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	engine "github.com/jason-s-yu/cucumber/engine"
	"github.com/jason-s-yu/cucumber/engine/agent"
	"github.com/jason-s-yu/cucumber/service/internal/models"
	"github.com/sirupsen/logrus"
)

// Prompt asks a human seat at a Table for its next card.
type Prompt struct {
	Seat        int
	View        engine.View
	Legal       []engine.Card
	MustDiscard bool
	Deadline    time.Time // zero when the turn has no time budget
	Err         error     // why the previous answer was rejected, if it was

	reply chan models.Action
}

// Reply answers the prompt. Only the first answer counts; it reports
// whether this one was taken.
func (p Prompt) Reply(a models.Action) bool {
	select {
	case p.reply <- a:
		return true
	default:
		return false
	}
}

// Table runs one match in process, with no store or lock. Bot seats are
// played by the decision engine; each human seat gets a Prompt on its own
// channel and the table waits for the reply, auto-playing the lowest legal
// card when the turn budget runs out.
type Table struct {
	// OnMove, if set, is called after every accepted move with the new state.
	OnMove func(m engine.Move, g *engine.GameState)

	cfg     engine.Config
	seats   []models.Seat
	rng     *engine.Source
	prompts []chan Prompt
	opts    []agent.Option
	log     *logrus.Entry

	mu    sync.Mutex
	state *engine.GameState
}

// NewTable deals a match for the given seats.
func NewTable(cfg engine.Config, seats []models.Seat, opts ...agent.Option) (*Table, error) {
	if cfg.Players == 0 {
		cfg.Players = len(seats)
	}
	if len(seats) != cfg.Players {
		return nil, fmt.Errorf("%w: %d seats for %d players", ErrBadRoom, len(seats), cfg.Players)
	}
	var seed uint64 = 1
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	rng := engine.NewSource(seed)
	g, err := engine.NewGame(cfg, rng)
	if err != nil {
		return nil, err
	}
	t := &Table{
		cfg:     cfg,
		seats:   seats,
		rng:     rng,
		prompts: make([]chan Prompt, len(seats)),
		opts:    opts,
		log:     logrus.WithField("component", "table"),
		state:   g,
	}
	for i := range t.prompts {
		t.prompts[i] = make(chan Prompt, 1)
	}
	return t, nil
}

// Prompts is where seat receives its turns. Bot seats never get one.
func (t *Table) Prompts(seat int) <-chan Prompt { return t.prompts[seat] }

// State returns a copy of the current state.
func (t *Table) State() *engine.GameState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// Run plays until the match ends or ctx is done and returns the last state.
func (t *Table) Run(ctx context.Context) (*engine.GameState, error) {
	for {
		g := t.State()
		if g.GameOver {
			return g, nil
		}
		seat := g.ToAct

		var move engine.Move
		if t.seats[seat].IsBot() {
			d, ok := agent.Choose(engine.ViewFor(g, seat), t.cfg.Difficulty, t.rng, t.opts...)
			if !ok {
				return g, fmt.Errorf("bot seat %d has no move", seat)
			}
			move = d.Move(seat)
		} else {
			var err error
			if move, err = t.ask(ctx, g, seat, nil); err != nil {
				return g, err
			}
		}

		for {
			move.At = time.Now()
			next, err := engine.ApplyMove(g, move, t.cfg, t.rng)
			if err == nil {
				t.mu.Lock()
				t.state = next
				t.mu.Unlock()
				if t.OnMove != nil {
					t.OnMove(move, next)
				}
				break
			}
			var me *engine.MoveError
			if !errors.As(err, &me) || t.seats[seat].IsBot() {
				return g, err
			}
			if move, err = t.ask(ctx, g, seat, me); err != nil {
				return g, err
			}
		}
	}
}

// ask prompts a human seat and waits for its answer.
func (t *Table) ask(ctx context.Context, g *engine.GameState, seat int, prev error) (engine.Move, error) {
	legal, discard := g.Legal()
	p := Prompt{
		Seat:        seat,
		View:        engine.ViewFor(g, seat),
		Legal:       legal,
		MustDiscard: discard,
		Err:         prev,
		reply:       make(chan models.Action, 1),
	}

	var expired <-chan time.Time
	if t.cfg.TurnTimeout > 0 {
		timer := time.NewTimer(t.cfg.TurnTimeout)
		defer timer.Stop()
		expired = timer.C
		p.Deadline = time.Now().Add(t.cfg.TurnTimeout)
	}

	// Drop a prompt nobody picked up; the slot only ever holds the current turn.
	select {
	case <-t.prompts[seat]:
	default:
	}
	t.prompts[seat] <- p

	select {
	case a := <-p.reply:
		return engine.Move{Player: seat, Card: a.Card, Discard: a.Discard}, nil
	case <-expired:
		t.log.WithField("seat", seat).Info("turn timed out, playing lowest legal card")
		return engine.Move{Player: seat, Card: legal[0], Discard: discard}, nil
	case <-ctx.Done():
		return engine.Move{}, ctx.Err()
	}
}
