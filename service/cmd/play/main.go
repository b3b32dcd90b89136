// cmd/play/main.go
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	engine "github.com/jason-s-yu/cucumber/engine"
	"github.com/jason-s-yu/cucumber/engine/agent"
	"github.com/jason-s-yu/cucumber/service/internal/game"
	"github.com/jason-s-yu/cucumber/service/internal/models"
	log "github.com/sirupsen/logrus"
)

// Plays one match in the terminal: you in seat 0, bots everywhere else.
func main() {
	players := flag.Int("players", 4, "number of seats, 2-6")
	difficulty := flag.String("difficulty", "normal", "bot difficulty: easy, normal or hard")
	threshold := flag.Int("threshold", 6, "cucumbers that end the match")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	timeout := flag.Duration("timeout", 0, "per-turn time budget, 0 for none")
	playouts := flag.Int("playouts", agent.DefaultPlayouts, "playouts per candidate for hard bots")
	flag.Parse()
	log.SetLevel(log.WarnLevel)

	cfg := engine.Config{
		Players:       *players,
		LossThreshold: *threshold,
		Difficulty:    engine.Difficulty(*difficulty),
		TurnTimeout:   *timeout,
		Seed:          seed,
	}
	seats := []models.Seat{{ActorID: "you", Kind: models.SeatHuman}}
	for i := 1; i < *players; i++ {
		seats = append(seats, models.Seat{ActorID: fmt.Sprintf("bot-%d", i), Kind: models.SeatBot})
	}

	tbl, err := game.NewTable(cfg, seats, agent.WithPlayouts(*playouts))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	tbl.OnMove = func(m engine.Move, g *engine.GameState) {
		verb := "plays"
		if m.Discard {
			verb = "discards"
		}
		fmt.Printf("  %s %s %d\n", seats[m.Player].ActorID, verb, m.Card)
		closed := len(g.Plays) == 0 || g.GameOver
		if t := g.LastTrick; closed && t != nil {
			if t.Final {
				fmt.Printf("round %d over: %s takes %d cucumbers\n", t.Round, seats[t.Winner].ActorID, t.Penalty)
			} else {
				fmt.Printf("  %s wins the trick\n", seats[t.Winner].ActorID)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go prompt(ctx, tbl)

	final, err := tbl.Run(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("game over")
	for i, p := range final.Players {
		fmt.Printf("  %-6s %2d cucumbers\n", seats[i].ActorID, p.Cucumbers)
	}
}

// prompt reads the human's card from stdin for every turn.
func prompt(ctx context.Context, tbl *game.Table) {
	in := bufio.NewScanner(os.Stdin)
	for {
		var p game.Prompt
		select {
		case p = <-tbl.Prompts(0):
		case <-ctx.Done():
			return
		}
		if p.Err != nil {
			fmt.Println("  rejected:", p.Err)
		}
		field := "empty"
		if p.View.Field != engine.NoCard {
			field = strconv.Itoa(int(p.View.Field))
		}
		fmt.Printf("round %d trick %d, field %s, hand %v\n", p.View.Round, p.View.Trick, field, p.View.Hand)
		if p.MustDiscard {
			fmt.Printf("nothing beats the field, discarding %d (enter to confirm): ", p.Legal[0])
		} else {
			fmt.Printf("play one of %v: ", engine.DistinctValues(p.Legal))
		}
		card, ok := readCard(in, p.Legal[0])
		if !ok {
			return
		}
		p.Reply(models.Action{Card: card, Discard: p.MustDiscard})
	}
}

// readCard reads lines until one parses as a card, re-prompting on bad input.
// An empty line picks def. Reports false once input is exhausted.
func readCard(in *bufio.Scanner, def engine.Card) (engine.Card, bool) {
	for in.Scan() {
		card, err := parseCard(in.Text(), def)
		if err == nil {
			return card, true
		}
		fmt.Printf("  %v, try again: ", err)
	}
	return engine.NoCard, false
}

// parseCard converts one line of input to a card value. Values outside the
// deck are rejected rather than wrapped into it.
func parseCard(text string, def engine.Card) (engine.Card, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return def, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return engine.NoCard, fmt.Errorf("%q is not a number", text)
	}
	if n < int(engine.MinValue) || n > int(engine.MaxValue) {
		return engine.NoCard, fmt.Errorf("%d is not a card, values run %d-%d", n, engine.MinValue, engine.MaxValue)
	}
	return engine.Card(n), nil
}
