// internal/handlers/stream.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/jason-s-yu/cucumber/service/internal/models"
	"github.com/jason-s-yu/cucumber/service/internal/pubsub"
	"github.com/sirupsen/logrus"
)

const writeTimeout = 5 * time.Second

// Stream handles GET /rooms/{roomId}/ws?actor=. The connection first
// receives the current view, then every newer view published for the actor.
// The stream is read-only; moves go through the HTTP endpoint.
func (h *Handlers) Stream(w http.ResponseWriter, r *http.Request) {
	roomID, actor := r.PathValue("roomId"), r.URL.Query().Get("actor")
	log := h.log.WithFields(logrus.Fields{"room": roomID, "actor": actor})

	// Check the room and seat before upgrading so errors are plain HTTP.
	if _, status, err := h.view(r); err != nil {
		writeError(w, status, err.Error())
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.origins})
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.CloseNow()

	// CloseRead discards client frames and cancels ctx when the peer goes away.
	ctx := conn.CloseRead(r.Context())

	// Subscribe before reading the current view so no version falls between them.
	sub, err := h.subs.Subscribe(ctx, pubsub.SeatChannel(roomID, actor))
	if err != nil {
		log.WithError(err).Error("subscribe failed")
		conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	defer sub.Close()

	current, err := h.rooms.View(ctx, roomID, actor)
	if err != nil {
		conn.Close(websocket.StatusPolicyViolation, "room unavailable")
		return
	}
	if err := writeView(ctx, conn, current); err != nil {
		return
	}
	sent := current.Version
	log.WithField("version", sent).Debug("stream opened")

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case payload, ok := <-sub.Messages():
			if !ok {
				conn.Close(websocket.StatusGoingAway, "subscription closed")
				return
			}
			var msg models.ViewMessage
			if err := json.Unmarshal(payload, &msg); err != nil {
				log.WithError(err).Warn("dropping undecodable view")
				continue
			}
			if msg.Version <= sent {
				continue
			}
			if err := writeView(ctx, conn, msg); err != nil {
				log.WithError(err).Debug("stream write failed")
				return
			}
			sent = msg.Version
		}
	}
}

func writeView(ctx context.Context, conn *websocket.Conn, msg models.ViewMessage) error {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(wctx, conn, msg)
}
