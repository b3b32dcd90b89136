// internal/game/broadcast.go
package game

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	engine "github.com/jason-s-yu/cucumber/engine"
	"github.com/jason-s-yu/cucumber/service/internal/models"
	"github.com/jason-s-yu/cucumber/service/internal/pubsub"
	"github.com/sirupsen/logrus"
)

// ViewHash fingerprints a filtered view so a client can check the state it
// rebuilt against the one the server sent.
func ViewHash(v engine.View) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode view: %w", err)
	}
	return strconv.FormatUint(xxhash.Sum64(b), 16), nil
}

// NewViewMessage builds the message for one seat of g at version.
func NewViewMessage(roomID string, version int64, g *engine.GameState, seat int) (models.ViewMessage, error) {
	v := engine.ViewFor(g, seat)
	h, err := ViewHash(v)
	if err != nil {
		return models.ViewMessage{}, err
	}
	return models.ViewMessage{RoomID: roomID, Version: version, State: v, Hash: h}, nil
}

// broadcast publishes every step, in order, to every human seat. Bots have
// no subscribers. Publish failures are logged and skipped: the snapshot is
// already stored and a client can always refetch it.
func (c *Coordinator) broadcast(ctx context.Context, snap *models.Snapshot, steps []step) {
	for _, s := range steps {
		for seat, who := range snap.Seats {
			if who.IsBot() {
				continue
			}
			log := c.log.WithFields(logrus.Fields{"room": snap.RoomID, "actor": who.ActorID, "version": s.version})
			msg, err := NewViewMessage(snap.RoomID, s.version, s.state, seat)
			if err != nil {
				log.WithError(err).Error("failed to build view")
				continue
			}
			b, err := json.Marshal(msg)
			if err != nil {
				log.WithError(err).Error("failed to encode view")
				continue
			}
			if err := c.pub.Publish(ctx, pubsub.SeatChannel(snap.RoomID, who.ActorID), b); err != nil {
				log.WithError(err).Warn("failed to publish view")
			}
		}
	}
}
