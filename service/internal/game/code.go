// internal/game/code.go
package game

import (
	"errors"
	"net/http"

	engine "github.com/jason-s-yu/cucumber/engine"
)

// Code is the outcome of a move submission.
type Code string

const (
	CodeOK           Code = "ok"
	CodeDeduplicated Code = "deduplicated"   // token already applied; nothing changed, current version returned
	CodeRoomBusy     Code = "room-busy"      // lock not acquired within the retry budget
	CodeStaleVersion Code = "stale-version"  // believed version differs from the stored one
	CodeInvalidMove  Code = "invalid-move"   // engine rejected the move
	CodeRoomNotFound Code = "room-not-found" // no snapshot for the room
	CodeBadRequest   Code = "bad-request"    // malformed submission
	CodeServerError  Code = "server-error"   // store or transport fault
)

// HTTPStatus maps the code onto the status the move endpoint answers with.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOK, CodeDeduplicated:
		return http.StatusOK
	case CodeStaleVersion:
		return http.StatusConflict
	case CodeRoomBusy:
		return http.StatusLocked
	case CodeInvalidMove, CodeBadRequest:
		return http.StatusBadRequest
	case CodeRoomNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Accepted reports whether the submission left the room at NewVersion.
func (c Code) Accepted() bool { return c == CodeOK || c == CodeDeduplicated }

// MoveResult is what SubmitMove returns for every domain outcome.
type MoveResult struct {
	Code Code
	// NewVersion is the room version after the call. For stale-version it is
	// the stored version the client should refetch.
	NewVersion int64
	Reason     engine.Reason // set for invalid-move
	Detail     string
}

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomExists   = errors.New("room already exists")
	ErrNotSeated    = errors.New("actor is not seated in this room")
	ErrBadRoom      = errors.New("invalid room")
	ErrLockLost     = errors.New("room lock lost before the snapshot was written")
)
