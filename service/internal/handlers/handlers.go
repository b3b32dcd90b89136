// internal/handlers/handlers.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jason-s-yu/cucumber/service/internal/game"
	"github.com/jason-s-yu/cucumber/service/internal/models"
	"github.com/jason-s-yu/cucumber/service/internal/pubsub"
	"github.com/sirupsen/logrus"
)

const maxBody = 64 << 10

// Rooms is the part of the coordinator the HTTP layer needs.
type Rooms interface {
	CreateRoom(ctx context.Context, spec models.RoomSpec) (*models.Snapshot, error)
	SubmitMove(ctx context.Context, req models.MoveRequest) (game.MoveResult, error)
	View(ctx context.Context, roomID, actorID string) (models.ViewMessage, error)
}

// Handlers serves the room API.
type Handlers struct {
	rooms   Rooms
	subs    pubsub.Subscriber
	origins []string
	log     *logrus.Entry
}

// New returns handlers backed by rooms, streaming views from subs. Cross-origin
// stream upgrades are refused unless the origin host matches one of
// originPatterns.
func New(rooms Rooms, subs pubsub.Subscriber, originPatterns []string) *Handlers {
	return &Handlers{rooms: rooms, subs: subs, origins: originPatterns, log: logrus.WithField("component", "http")}
}

// Routes registers every endpoint on a new mux.
func (h *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /rooms", h.CreateRoom)
	mux.HandleFunc("POST /rooms/{roomId}/moves", h.SubmitMove)
	mux.HandleFunc("GET /rooms/{roomId}/state", h.State)
	mux.HandleFunc("GET /rooms/{roomId}/ws", h.Stream)
	return mux
}

type createRoomResponse struct {
	RoomID  string        `json:"roomId"`
	Version int64         `json:"version"`
	Seats   []models.Seat `json:"seats"`
}

// CreateRoom handles POST /rooms.
func (h *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var spec models.RoomSpec
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	snap, err := h.rooms.CreateRoom(r.Context(), spec)
	switch {
	case errors.Is(err, game.ErrBadRoom):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, game.ErrRoomExists):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		h.log.WithError(err).Error("create room failed")
		writeError(w, http.StatusInternalServerError, "could not create room")
		return
	}
	writeJSON(w, http.StatusCreated, createRoomResponse{RoomID: snap.RoomID, Version: snap.Version, Seats: snap.Seats})
}

// SubmitMove handles POST /rooms/{roomId}/moves.
func (h *Handlers) SubmitMove(w http.ResponseWriter, r *http.Request) {
	var req models.MoveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.MoveResponse{Code: string(game.CodeBadRequest), Message: "invalid JSON body"})
		return
	}
	req.RoomID = r.PathValue("roomId")

	res, err := h.rooms.SubmitMove(r.Context(), req)
	if err != nil {
		h.log.WithError(err).WithField("room", req.RoomID).Error("submit move failed")
	}
	body := models.MoveResponse{
		Code:         string(res.Code),
		Deduplicated: res.Code == game.CodeDeduplicated,
		Reason:       string(res.Reason),
		Message:      res.Detail,
	}
	if res.Code != game.CodeServerError {
		body.NewVersion = res.NewVersion
	}
	writeJSON(w, res.Code.HTTPStatus(), body)
}

// State handles GET /rooms/{roomId}/state?actor=.
func (h *Handlers) State(w http.ResponseWriter, r *http.Request) {
	msg, status, err := h.view(r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// view loads the caller's current view and the status to answer with on error.
func (h *Handlers) view(r *http.Request) (models.ViewMessage, int, error) {
	roomID, actor := r.PathValue("roomId"), r.URL.Query().Get("actor")
	if actor == "" {
		return models.ViewMessage{}, http.StatusBadRequest, errors.New("actor query parameter is required")
	}
	msg, err := h.rooms.View(r.Context(), roomID, actor)
	switch {
	case errors.Is(err, game.ErrRoomNotFound):
		return msg, http.StatusNotFound, err
	case errors.Is(err, game.ErrNotSeated):
		return msg, http.StatusForbidden, err
	case err != nil:
		h.log.WithError(err).WithField("room", roomID).Error("load view failed")
		return msg, http.StatusInternalServerError, errors.New("could not load room")
	}
	return msg, http.StatusOK, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
