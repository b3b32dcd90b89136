// internal/game/coordinator.go
package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/cucumber/engine"
	"github.com/jason-s-yu/cucumber/service/internal/cache"
	"github.com/jason-s-yu/cucumber/service/internal/models"
	"github.com/jason-s-yu/cucumber/service/internal/pubsub"
	"github.com/sirupsen/logrus"
)

// Archive receives finished matches.
type Archive interface {
	RecordMatch(ctx context.Context, rec models.MatchRecord) error
}

// Options tunes a Coordinator.
type Options struct {
	LockTTL      time.Duration // lifetime of a room lock if its owner never releases it
	LockAttempts int           // SetNX tries before answering room-busy
	LockBackoff  time.Duration // wait between tries
	OpTTL        time.Duration // how long an idempotency token is remembered
	BotPlayouts  int           // playouts per candidate for hard bots

	Archive Archive          // optional
	Now     func() time.Time // defaults to time.Now
}

// DefaultOptions returns the production timings.
func DefaultOptions() Options {
	return Options{
		LockTTL:      5 * time.Second,
		LockAttempts: 3,
		LockBackoff:  25 * time.Millisecond,
		OpTTL:        60 * time.Second,
		BotPlayouts:  64,
	}
}

// Coordinator serializes moves on a room across any number of server
// processes. It keeps no game state of its own: every call loads the
// versioned snapshot from the store while holding the room lock.
type Coordinator struct {
	store cache.Store
	pub   pubsub.Publisher
	opts  Options
	log   *logrus.Entry
}

// NewCoordinator wires a coordinator to its store and view publisher.
// Zero fields in opts take their DefaultOptions value.
func NewCoordinator(store cache.Store, pub pubsub.Publisher, opts Options) *Coordinator {
	def := DefaultOptions()
	if opts.LockTTL <= 0 {
		opts.LockTTL = def.LockTTL
	}
	if opts.LockAttempts <= 0 {
		opts.LockAttempts = def.LockAttempts
	}
	if opts.LockBackoff <= 0 {
		opts.LockBackoff = def.LockBackoff
	}
	if opts.OpTTL <= 0 {
		opts.OpTTL = def.OpTTL
	}
	if opts.BotPlayouts <= 0 {
		opts.BotPlayouts = def.BotPlayouts
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Coordinator{
		store: store,
		pub:   pub,
		opts:  opts,
		log:   logrus.WithField("component", "coordinator"),
	}
}

// SubmitMove applies one move to a room. Domain outcomes are reported in the
// result's Code; the error is non-nil only for store faults, in which case
// the Code is server-error and nothing was persisted.
func (c *Coordinator) SubmitMove(ctx context.Context, req models.MoveRequest) (MoveResult, error) {
	if req.RoomID == "" || req.ActorID == "" || req.IdempotencyToken == "" {
		return MoveResult{Code: CodeBadRequest, Detail: "roomId, actorId and idempotencyToken are required"}, nil
	}
	log := c.log.WithFields(logrus.Fields{"room": req.RoomID, "actor": req.ActorID})

	lock, ok, err := c.acquire(ctx, req.RoomID)
	if err != nil {
		return MoveResult{Code: CodeServerError}, err
	}
	if !ok {
		log.Debug("room busy")
		return MoveResult{Code: CodeRoomBusy}, nil
	}
	defer lock.release(ctx)

	_, err = c.store.Get(ctx, cache.OpKey(req.RoomID, req.IdempotencyToken))
	seen := err == nil
	if err != nil && !errors.Is(err, cache.ErrNotFound) {
		return MoveResult{Code: CodeServerError}, err
	}

	snap, err := c.load(ctx, req.RoomID)
	if errors.Is(err, ErrRoomNotFound) {
		return MoveResult{Code: CodeRoomNotFound}, nil
	}
	if err != nil {
		return MoveResult{Code: CodeServerError}, err
	}
	if seen {
		log.WithField("version", snap.Version).Debug("duplicate submission")
		return MoveResult{Code: CodeDeduplicated, NewVersion: snap.Version}, nil
	}
	if req.BelievedVersion != snap.Version {
		return MoveResult{Code: CodeStaleVersion, NewVersion: snap.Version}, nil
	}

	seat := snap.SeatOf(req.ActorID)
	if seat < 0 || snap.Seats[seat].IsBot() {
		return MoveResult{Code: CodeInvalidMove, NewVersion: snap.Version, Reason: engine.ReasonNotYourTurn, Detail: "actor has no playable seat"}, nil
	}

	rng := engine.NewSource(snap.RNG)
	move := engine.Move{Player: seat, Card: req.Action.Card, Discard: req.Action.Discard, At: c.opts.Now()}
	next, err := engine.ApplyMove(snap.State, move, snap.Config, rng)
	if err != nil {
		var me *engine.MoveError
		if errors.As(err, &me) {
			log.WithField("reason", me.Reason).Debug("move rejected")
			return MoveResult{Code: CodeInvalidMove, NewVersion: snap.Version, Reason: me.Reason, Detail: me.Detail}, nil
		}
		return MoveResult{Code: CodeServerError}, err
	}

	steps := []step{{version: snap.Version + 1, state: next}}
	steps = append(steps, c.playBots(snap, next, rng, snap.Version+1)...)
	last := steps[len(steps)-1]

	snap.State = last.state
	snap.RNG = rng.State()
	snap.Version = last.version
	snap.UpdatedAt = c.opts.Now()
	if err := c.save(ctx, lock, snap); err != nil {
		if errors.Is(err, ErrLockLost) {
			log.Warn("room lock expired mid-move, discarding result")
		}
		return MoveResult{Code: CodeServerError}, err
	}

	// The snapshot is durable: from here on failures are logged, never returned.
	if err := c.store.Set(ctx, cache.OpKey(req.RoomID, req.IdempotencyToken), []byte(strconv.FormatInt(snap.Version, 10)), c.opts.OpTTL); err != nil {
		log.WithError(err).Warn("failed to record idempotency token")
	}
	c.broadcast(ctx, snap, steps)
	if snap.State.GameOver {
		c.archive(ctx, snap)
	}

	log.WithField("version", snap.Version).Info("move applied")
	return MoveResult{Code: CodeOK, NewVersion: snap.Version}, nil
}

// roomLock is a held room lock and the fencing token it was taken with.
type roomLock struct {
	c      *Coordinator
	roomID string
	token  []byte
}

// release deletes the lock only while it still holds our token, so an owner
// whose lock expired cannot free a successor's lock. It runs even if ctx was
// cancelled.
func (l *roomLock) release(ctx context.Context) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()
	released, err := l.c.store.DeleteIfEquals(rctx, cache.LockKey(l.roomID), l.token)
	if err != nil {
		l.c.log.WithError(err).WithField("room", l.roomID).Warn("failed to release room lock")
	} else if !released {
		l.c.log.WithField("room", l.roomID).Warn("room lock expired before release")
	}
}

// acquire takes the room lock with a fresh fencing token, retrying a few
// times.
func (c *Coordinator) acquire(ctx context.Context, roomID string) (*roomLock, bool, error) {
	key := cache.LockKey(roomID)
	token := []byte(uuid.NewString())

	for attempt := 0; attempt < c.opts.LockAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, false, ctx.Err()
			case <-time.After(c.opts.LockBackoff):
			}
		}
		ok, err := c.store.SetNX(ctx, key, token, c.opts.LockTTL)
		if err != nil {
			return nil, false, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			return &roomLock{c: c, roomID: roomID, token: token}, true, nil
		}
	}
	return nil, false, nil
}

func (c *Coordinator) load(ctx context.Context, roomID string) (*models.Snapshot, error) {
	b, err := c.store.Get(ctx, cache.RoomKey(roomID))
	if errors.Is(err, cache.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	var snap models.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", roomID, err)
	}
	if snap.State == nil {
		return nil, fmt.Errorf("snapshot %s has no state", roomID)
	}
	return &snap, nil
}

// save writes the snapshot only while lock still owns the room. A holder
// whose lock expired gets ErrLockLost and must not report the move applied.
func (c *Coordinator) save(ctx context.Context, lock *roomLock, snap *models.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", snap.RoomID, err)
	}
	ok, err := c.store.SetIfEquals(ctx, cache.LockKey(snap.RoomID), lock.token, cache.RoomKey(snap.RoomID), b, 0)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", snap.RoomID, err)
	}
	if !ok {
		return fmt.Errorf("save snapshot %s: %w", snap.RoomID, ErrLockLost)
	}
	return nil
}

// archive hands a finished match to the archive. Failures are logged only.
func (c *Coordinator) archive(ctx context.Context, snap *models.Snapshot) {
	if c.opts.Archive == nil {
		return
	}
	rec := models.MatchRecord{
		RoomID:     snap.RoomID,
		Seats:      snap.Seats,
		Cucumbers:  make([]int, len(snap.State.Players)),
		Losers:     snap.State.Losers,
		Rounds:     snap.State.Round,
		Version:    snap.Version,
		StartedAt:  snap.CreatedAt,
		FinishedAt: snap.UpdatedAt,
	}
	for i, p := range snap.State.Players {
		rec.Cucumbers[i] = p.Cucumbers
	}
	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := c.opts.Archive.RecordMatch(actx, rec); err != nil {
		c.log.WithError(err).WithField("room", snap.RoomID).Error("failed to archive match")
	}
}
