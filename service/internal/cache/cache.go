// internal/cache/cache.go
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("cache: key not found")

// Store is the key-value collaborator rooms are coordinated through. Every
// operation is atomic with respect to the others on the same key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes value unconditionally. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetNX writes value only if key is absent and reports whether it did.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	// SetIfEquals writes value to key only while guardKey still holds guard,
	// and reports whether it did. Both keys must live on the same node.
	SetIfEquals(ctx context.Context, guardKey string, guard []byte, key string, value []byte, ttl time.Duration) (bool, error)
	// DeleteIfEquals removes key only while it still holds value.
	DeleteIfEquals(ctx context.Context, key string, value []byte) (bool, error)
	Delete(ctx context.Context, key string) error
}

// RoomKey holds the snapshot of a room.
func RoomKey(roomID string) string { return "room:" + roomID }

// LockKey holds the fencing token of whoever currently owns a room.
func LockKey(roomID string) string { return "lock:" + roomID }

// OpKey records that an idempotency token has already been applied to a room.
func OpKey(roomID, token string) string { return "op:" + roomID + ":" + token }
