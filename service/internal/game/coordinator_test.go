// internal/game/coordinator_test.go
package game

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/cucumber/engine"
	"github.com/jason-s-yu/cucumber/service/internal/cache"
	"github.com/jason-s-yu/cucumber/service/internal/models"
	"github.com/jason-s-yu/cucumber/service/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPublisher captures published views for testing assertions.
type mockPublisher struct {
	mu       sync.Mutex
	messages map[string][]models.ViewMessage
	fail     bool
}

func newMockPublisher() *mockPublisher {
	return &mockPublisher{messages: make(map[string][]models.ViewMessage)}
}

func (mp *mockPublisher) Publish(_ context.Context, channel string, payload []byte) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	if mp.fail {
		return errors.New("transport down")
	}
	var msg models.ViewMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}
	mp.messages[channel] = append(mp.messages[channel], msg)
	return nil
}

func (mp *mockPublisher) forActor(roomID, actorID string) []models.ViewMessage {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	return append([]models.ViewMessage(nil), mp.messages[pubsub.SeatChannel(roomID, actorID)]...)
}

func (mp *mockPublisher) count() int {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	n := 0
	for _, m := range mp.messages {
		n += len(m)
	}
	return n
}

// mockArchive records archived matches.
type mockArchive struct {
	mu      sync.Mutex
	records []models.MatchRecord
}

func (ma *mockArchive) RecordMatch(_ context.Context, rec models.MatchRecord) error {
	ma.mu.Lock()
	defer ma.mu.Unlock()
	ma.records = append(ma.records, rec)
	return nil
}

// faultyStore fails writes to keys with the given prefix.
type faultyStore struct {
	*cache.MemoryStore
	failPrefix string
}

func (s *faultyStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if strings.HasPrefix(key, s.failPrefix) {
		return errors.New("store unavailable")
	}
	return s.MemoryStore.Set(ctx, key, value, ttl)
}

func (s *faultyStore) SetIfEquals(ctx context.Context, guardKey string, guard []byte, key string, value []byte, ttl time.Duration) (bool, error) {
	if strings.HasPrefix(key, s.failPrefix) {
		return false, errors.New("store unavailable")
	}
	return s.MemoryStore.SetIfEquals(ctx, guardKey, guard, key, value, ttl)
}

// lockStealingStore hands the room lock to another owner as soon as the
// snapshot is loaded, as if the holder stalled past the lock TTL.
type lockStealingStore struct {
	*cache.MemoryStore
}

func (s *lockStealingStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.MemoryStore.Get(ctx, key)
	if err == nil && strings.HasPrefix(key, "room:") {
		roomID := strings.TrimPrefix(key, "room:")
		if err := s.MemoryStore.Set(ctx, cache.LockKey(roomID), []byte("successor"), time.Minute); err != nil {
			return nil, err
		}
	}
	return b, err
}

func seed(v uint64) *uint64 { return &v }

func testOptions() Options {
	return Options{LockAttempts: 3, LockBackoff: time.Millisecond, BotPlayouts: 4}
}

// setupTestRoom creates a coordinator on an in-memory store and a two-human room.
func setupTestRoom(t *testing.T) (*Coordinator, *cache.MemoryStore, *mockPublisher, *models.Snapshot) {
	t.Helper()
	store := cache.NewMemoryStore()
	pub := newMockPublisher()
	c := NewCoordinator(store, pub, testOptions())

	cfg := engine.DefaultConfig()
	cfg.Players = 2
	cfg.Seed = seed(42)
	snap, err := c.CreateRoom(context.Background(), models.RoomSpec{
		RoomID: "room-" + uuid.NewString(),
		Config: cfg,
		Seats: []models.Seat{
			{ActorID: "alice", Kind: models.SeatHuman},
			{ActorID: "bob", Kind: models.SeatHuman},
		},
	})
	require.NoError(t, err)
	return c, store, pub, snap
}

// legalAction returns the lowest legal card for whoever is to act.
func legalAction(g *engine.GameState) models.Action {
	legal, discard := g.Legal()
	return models.Action{Card: legal[0], Discard: discard}
}

func actorToAct(snap *models.Snapshot) string {
	return snap.Seats[snap.State.ToAct].ActorID
}

func moveRequest(snap *models.Snapshot, actor string, a models.Action) models.MoveRequest {
	return models.MoveRequest{
		RoomID:           snap.RoomID,
		ActorID:          actor,
		IdempotencyToken: uuid.NewString(),
		BelievedVersion:  snap.Version,
		Action:           a,
	}
}

func mustSnapshot(t *testing.T, c *Coordinator, roomID string) *models.Snapshot {
	t.Helper()
	snap, err := c.Snapshot(context.Background(), roomID)
	require.NoError(t, err)
	return snap
}

func TestCreateRoom(t *testing.T) {
	_, _, pub, snap := setupTestRoom(t)

	assert.EqualValues(t, 1, snap.Version)
	assert.Equal(t, engine.PhaseAwaitingMove, snap.State.Phase)
	assert.Equal(t, engine.DeckSize, snap.State.CardCount())

	for seat, actor := range []string{"alice", "bob"} {
		msgs := pub.forActor(snap.RoomID, actor)
		require.Len(t, msgs, 1, "one initial view per human")
		assert.EqualValues(t, 1, msgs[0].Version)
		assert.Equal(t, seat, msgs[0].State.Seat)
		assert.Equal(t, snap.State.Players[seat].Hand, msgs[0].State.Hand)

		want, err := ViewHash(msgs[0].State)
		require.NoError(t, err)
		assert.Equal(t, want, msgs[0].Hash, "hash covers the delivered view")
	}
}

func TestCreateRoomRejects(t *testing.T) {
	c := NewCoordinator(cache.NewMemoryStore(), newMockPublisher(), testOptions())
	ctx := context.Background()
	human := models.Seat{ActorID: "a", Kind: models.SeatHuman}
	bot := models.Seat{Kind: models.SeatBot}

	cases := map[string]models.RoomSpec{
		"no humans":      {Seats: []models.Seat{bot, bot}},
		"one seat":       {Seats: []models.Seat{human}},
		"count mismatch": {Config: engine.Config{Players: 3}, Seats: []models.Seat{human, bot}},
		"seated twice":   {Seats: []models.Seat{human, human}},
		"unknown kind":   {Seats: []models.Seat{human, {ActorID: "x", Kind: "ghost"}}},
		"no actor":       {Seats: []models.Seat{{Kind: models.SeatHuman}, bot}},
		"bad difficulty": {Config: engine.Config{Difficulty: "insane"}, Seats: []models.Seat{human, bot}},
		"low threshold":  {Config: engine.Config{LossThreshold: 3}, Seats: []models.Seat{human, bot}},
		"high threshold": {Config: engine.Config{LossThreshold: 8}, Seats: []models.Seat{human, bot}},
	}
	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.CreateRoom(ctx, spec)
			assert.ErrorIs(t, err, ErrBadRoom)
		})
	}

	spec := models.RoomSpec{RoomID: "dup", Seats: []models.Seat{human, bot}}
	_, err := c.CreateRoom(ctx, spec)
	require.NoError(t, err)
	_, err = c.CreateRoom(ctx, spec)
	assert.ErrorIs(t, err, ErrRoomExists)
}

func TestSubmitMoveApplies(t *testing.T) {
	c, store, pub, snap := setupTestRoom(t)
	ctx := context.Background()
	actor := actorToAct(snap)
	seat := snap.State.ToAct
	handBefore := len(snap.State.Players[seat].Hand)

	req := moveRequest(snap, actor, legalAction(snap.State))
	res, err := c.SubmitMove(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, CodeOK, res.Code)
	assert.EqualValues(t, 2, res.NewVersion)

	after := mustSnapshot(t, c, snap.RoomID)
	assert.EqualValues(t, 2, after.Version)
	assert.Len(t, after.State.Players[seat].Hand, handBefore-1)
	assert.NotEqual(t, snap.RNG, after.RNG, "random source position is persisted")
	assert.Equal(t, engine.DeckSize, after.State.CardCount())

	token, err := store.Get(ctx, cache.OpKey(snap.RoomID, req.IdempotencyToken))
	require.NoError(t, err)
	assert.Equal(t, "2", string(token))

	_, err = store.Get(ctx, cache.LockKey(snap.RoomID))
	assert.ErrorIs(t, err, cache.ErrNotFound, "lock released after the move")

	for _, who := range []string{"alice", "bob"} {
		msgs := pub.forActor(snap.RoomID, who)
		require.Len(t, msgs, 2)
		assert.EqualValues(t, 2, msgs[1].Version)
	}
}

func TestViewsHideOtherHands(t *testing.T) {
	c, _, pub, snap := setupTestRoom(t)
	ctx := context.Background()

	for seat, actor := range []string{"alice", "bob"} {
		v, err := c.View(ctx, snap.RoomID, actor)
		require.NoError(t, err)
		assert.Equal(t, snap.State.Players[seat].Hand, v.State.Hand)
		for i, s := range v.State.Seats {
			assert.Equal(t, len(snap.State.Players[i].Hand), s.HandSize)
		}

		raw, err := json.Marshal(pub.forActor(snap.RoomID, actor)[0])
		require.NoError(t, err)
		assert.NotContains(t, string(raw), `"players"`, "the full state never leaves the server")
	}

	_, err := c.View(ctx, snap.RoomID, "mallory")
	assert.ErrorIs(t, err, ErrNotSeated)
	_, err = c.View(ctx, "nowhere", "alice")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestSubmitMoveIdempotent(t *testing.T) {
	c, store, pub, snap := setupTestRoom(t)
	ctx := context.Background()
	req := moveRequest(snap, actorToAct(snap), legalAction(snap.State))

	first, err := c.SubmitMove(ctx, req)
	require.NoError(t, err)
	require.Equal(t, CodeOK, first.Code)

	stored, err := store.Get(ctx, cache.RoomKey(snap.RoomID))
	require.NoError(t, err)
	published := pub.count()

	again, err := c.SubmitMove(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, CodeDeduplicated, again.Code)
	assert.Equal(t, first.NewVersion, again.NewVersion)
	assert.Equal(t, 200, again.Code.HTTPStatus())

	unchanged, err := store.Get(ctx, cache.RoomKey(snap.RoomID))
	require.NoError(t, err)
	assert.Equal(t, stored, unchanged, "replay leaves the snapshot untouched")
	assert.Equal(t, published, pub.count(), "replay publishes nothing")

	// Once the room moves on, a replay reports the current version.
	snap = mustSnapshot(t, c, snap.RoomID)
	res, err := c.SubmitMove(ctx, moveRequest(snap, actorToAct(snap), legalAction(snap.State)))
	require.NoError(t, err)
	require.Equal(t, CodeOK, res.Code)

	again, err = c.SubmitMove(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, CodeDeduplicated, again.Code)
	assert.Equal(t, res.NewVersion, again.NewVersion)
}

func TestSubmitMoveStaleVersion(t *testing.T) {
	c, _, _, snap := setupTestRoom(t)
	req := moveRequest(snap, actorToAct(snap), legalAction(snap.State))
	req.BelievedVersion = 7

	res, err := c.SubmitMove(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, CodeStaleVersion, res.Code)
	assert.EqualValues(t, 1, res.NewVersion, "stale answer carries the current version")
	assert.EqualValues(t, 1, mustSnapshot(t, c, snap.RoomID).Version)
}

func TestSubmitMoveRoomBusy(t *testing.T) {
	c, store, _, snap := setupTestRoom(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, cache.LockKey(snap.RoomID), []byte("someone-else"), time.Minute))

	res, err := c.SubmitMove(ctx, moveRequest(snap, actorToAct(snap), legalAction(snap.State)))
	require.NoError(t, err)
	assert.Equal(t, CodeRoomBusy, res.Code)
	assert.Equal(t, 423, res.Code.HTTPStatus())

	held, err := store.Get(ctx, cache.LockKey(snap.RoomID))
	require.NoError(t, err)
	assert.Equal(t, "someone-else", string(held), "a busy caller never touches the lock")
	assert.EqualValues(t, 1, mustSnapshot(t, c, snap.RoomID).Version)
}

func TestSubmitMoveInvalid(t *testing.T) {
	c, _, _, snap := setupTestRoom(t)
	ctx := context.Background()
	toAct := actorToAct(snap)
	other := "alice"
	if toAct == "alice" {
		other = "bob"
	}

	missing := engine.Card(engine.MinValue)
	for missing <= engine.MaxValue && contains(snap.State.Players[snap.State.ToAct].Hand, missing) {
		missing++
	}
	require.LessOrEqual(t, missing, engine.Card(engine.MaxValue))

	cases := []struct {
		name   string
		actor  string
		action models.Action
		reason engine.Reason
	}{
		{"out of turn", other, legalAction(snap.State), engine.ReasonNotYourTurn},
		{"not seated", "mallory", legalAction(snap.State), engine.ReasonNotYourTurn},
		{"card not held", toAct, models.Action{Card: missing}, engine.ReasonIllegalCard},
		{"discard on empty field", toAct, models.Action{Card: legalAction(snap.State).Card, Discard: true}, engine.ReasonBadDiscard},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := c.SubmitMove(ctx, moveRequest(snap, tc.actor, tc.action))
			require.NoError(t, err)
			assert.Equal(t, CodeInvalidMove, res.Code)
			assert.Equal(t, tc.reason, res.Reason)
			assert.Equal(t, 400, res.Code.HTTPStatus())
		})
	}
	assert.EqualValues(t, 1, mustSnapshot(t, c, snap.RoomID).Version, "rejected moves change nothing")

	res, err := c.SubmitMove(ctx, models.MoveRequest{RoomID: snap.RoomID, ActorID: toAct})
	require.NoError(t, err)
	assert.Equal(t, CodeBadRequest, res.Code)

	req := moveRequest(snap, toAct, legalAction(snap.State))
	req.RoomID = "no-such-room"
	res, err = c.SubmitMove(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, CodeRoomNotFound, res.Code)
}

func contains(hand []engine.Card, c engine.Card) bool {
	for _, h := range hand {
		if h == c {
			return true
		}
	}
	return false
}

// TestConcurrentSubmissions races many submissions built from the same
// version; exactly one may win.
func TestConcurrentSubmissions(t *testing.T) {
	store := cache.NewMemoryStore()
	c := NewCoordinator(store, newMockPublisher(), Options{LockAttempts: 200, LockBackoff: time.Millisecond})
	cfg := engine.DefaultConfig()
	cfg.Players = 2
	cfg.Seed = seed(9)
	snap, err := c.CreateRoom(context.Background(), models.RoomSpec{
		Config: cfg,
		Seats:  []models.Seat{{ActorID: "alice", Kind: models.SeatHuman}, {ActorID: "bob", Kind: models.SeatHuman}},
	})
	require.NoError(t, err)

	const n = 12
	results := make([]MoveResult, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := c.SubmitMove(context.Background(), moveRequest(snap, actorToAct(snap), legalAction(snap.State)))
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	counts := map[Code]int{}
	for _, r := range results {
		counts[r.Code]++
	}
	assert.Equal(t, 1, counts[CodeOK], "results: %v", counts)
	assert.Equal(t, n-1, counts[CodeStaleVersion]+counts[CodeRoomBusy], "results: %v", counts)
	assert.EqualValues(t, 2, mustSnapshot(t, c, snap.RoomID).Version)
}

// TestLockReleaseMatchesToken verifies a holder whose lock expired and was
// taken over cannot delete the new owner's lock.
func TestLockReleaseMatchesToken(t *testing.T) {
	store := cache.NewMemoryStore()
	c := NewCoordinator(store, newMockPublisher(), testOptions())
	ctx := context.Background()

	lock, ok, err := c.acquire(ctx, "r")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = c.acquire(ctx, "r")
	require.NoError(t, err)
	assert.False(t, ok, "second acquire fails while held")

	// Simulate expiry followed by another owner.
	require.NoError(t, store.Set(ctx, cache.LockKey("r"), []byte("successor"), time.Minute))
	lock.release(ctx)

	held, err := store.Get(ctx, cache.LockKey("r"))
	require.NoError(t, err)
	assert.Equal(t, "successor", string(held))
}

func TestSubmitMovePublishFailure(t *testing.T) {
	c, _, pub, snap := setupTestRoom(t)
	pub.mu.Lock()
	pub.fail = true
	pub.mu.Unlock()

	res, err := c.SubmitMove(context.Background(), moveRequest(snap, actorToAct(snap), legalAction(snap.State)))
	require.NoError(t, err)
	assert.Equal(t, CodeOK, res.Code, "publish failures after persistence do not fail the move")
	assert.EqualValues(t, 2, mustSnapshot(t, c, snap.RoomID).Version)
}

func TestSubmitMoveStoreFailure(t *testing.T) {
	mem := cache.NewMemoryStore()
	pub := newMockPublisher()
	healthy := NewCoordinator(mem, pub, testOptions())
	cfg := engine.DefaultConfig()
	cfg.Players = 2
	snap, err := healthy.CreateRoom(context.Background(), models.RoomSpec{
		Config: cfg,
		Seats:  []models.Seat{{ActorID: "alice", Kind: models.SeatHuman}, {ActorID: "bob", Kind: models.SeatHuman}},
	})
	require.NoError(t, err)
	published := pub.count()

	c := NewCoordinator(&faultyStore{MemoryStore: mem, failPrefix: "room:"}, pub, testOptions())
	req := moveRequest(snap, actorToAct(snap), legalAction(snap.State))
	res, err := c.SubmitMove(context.Background(), req)
	assert.Error(t, err)
	assert.Equal(t, CodeServerError, res.Code)
	assert.Equal(t, 500, res.Code.HTTPStatus())

	_, err = mem.Get(context.Background(), cache.OpKey(snap.RoomID, req.IdempotencyToken))
	assert.ErrorIs(t, err, cache.ErrNotFound, "token is only recorded after a successful write")
	_, err = mem.Get(context.Background(), cache.LockKey(snap.RoomID))
	assert.ErrorIs(t, err, cache.ErrNotFound, "lock released on failure")
	assert.Equal(t, published, pub.count())
}

// TestSubmitMoveExpiredLockCannotOverwrite verifies a holder whose lock was
// taken over mid-move leaves the successor's snapshot untouched.
func TestSubmitMoveExpiredLockCannotOverwrite(t *testing.T) {
	mem := cache.NewMemoryStore()
	pub := newMockPublisher()
	healthy := NewCoordinator(mem, pub, testOptions())
	cfg := engine.DefaultConfig()
	cfg.Players = 2
	snap, err := healthy.CreateRoom(context.Background(), models.RoomSpec{
		Config: cfg,
		Seats:  []models.Seat{{ActorID: "alice", Kind: models.SeatHuman}, {ActorID: "bob", Kind: models.SeatHuman}},
	})
	require.NoError(t, err)
	published := pub.count()

	c := NewCoordinator(&lockStealingStore{MemoryStore: mem}, pub, testOptions())
	req := moveRequest(snap, actorToAct(snap), legalAction(snap.State))
	res, err := c.SubmitMove(context.Background(), req)
	assert.ErrorIs(t, err, ErrLockLost)
	assert.Equal(t, CodeServerError, res.Code)

	assert.EqualValues(t, snap.Version, mustSnapshot(t, healthy, snap.RoomID).Version, "stale holder must not write")
	_, err = mem.Get(context.Background(), cache.OpKey(snap.RoomID, req.IdempotencyToken))
	assert.ErrorIs(t, err, cache.ErrNotFound, "token is not recorded for a discarded move")
	held, err := mem.Get(context.Background(), cache.LockKey(snap.RoomID))
	require.NoError(t, err)
	assert.Equal(t, "successor", string(held), "successor keeps its lock")
	assert.Equal(t, published, pub.count())
}

func TestBotsPlayAfterHuman(t *testing.T) {
	store := cache.NewMemoryStore()
	pub := newMockPublisher()
	c := NewCoordinator(store, pub, testOptions())
	cfg := engine.DefaultConfig()
	cfg.Players = 3
	cfg.Seed = seed(5)
	cfg.Difficulty = engine.DifficultyEasy
	snap, err := c.CreateRoom(context.Background(), models.RoomSpec{
		Config: cfg,
		Seats: []models.Seat{
			{Kind: models.SeatBot},
			{ActorID: "alice", Kind: models.SeatHuman},
			{Kind: models.SeatBot},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, snap.State.ToAct, "bots that lead play before the room is stored")
	assert.Equal(t, "bot-0", snap.Seats[0].ActorID)

	after := snap
	const moves = 5
	for i := 0; i < moves && !after.State.GameOver; i++ {
		res, err := c.SubmitMove(context.Background(), moveRequest(after, "alice", legalAction(after.State)))
		require.NoError(t, err)
		require.Equal(t, CodeOK, res.Code)
		after = mustSnapshot(t, c, snap.RoomID)
		assert.True(t, after.State.GameOver || after.State.ToAct == 1, "control returns to the human seat")
	}
	assert.Greater(t, after.Version, snap.Version+moves, "each bot move takes a version")

	msgs := pub.forActor(snap.RoomID, "alice")
	for i := 1; i < len(msgs); i++ {
		assert.Equal(t, msgs[i-1].Version+1, msgs[i].Version, "views arrive one version at a time")
	}
	assert.Equal(t, after.Version, msgs[len(msgs)-1].Version)
	assert.Empty(t, pub.forActor(snap.RoomID, "bot-0"), "bots are not sent views")
}

func TestFullMatchAgainstBotsIsArchived(t *testing.T) {
	archive := &mockArchive{}
	opts := testOptions()
	opts.Archive = archive
	c := NewCoordinator(cache.NewMemoryStore(), newMockPublisher(), opts)

	cfg := engine.DefaultConfig()
	cfg.Players = 2
	cfg.LossThreshold = MinLossThreshold
	cfg.Seed = seed(11)
	cfg.Difficulty = engine.DifficultyEasy
	snap, err := c.CreateRoom(context.Background(), models.RoomSpec{
		Config: cfg,
		Seats:  []models.Seat{{ActorID: "alice", Kind: models.SeatHuman}, {Kind: models.SeatBot}},
	})
	require.NoError(t, err)

	for i := 0; i < 2000 && !snap.State.GameOver; i++ {
		res, err := c.SubmitMove(context.Background(), moveRequest(snap, "alice", legalAction(snap.State)))
		require.NoError(t, err)
		require.Equal(t, CodeOK, res.Code, "move %d: %+v", i, res)
		snap = mustSnapshot(t, c, snap.RoomID)
	}
	require.True(t, snap.State.GameOver, "match did not finish")
	assert.Equal(t, engine.PhaseGameEnd, snap.State.Phase)

	require.Len(t, archive.records, 1)
	rec := archive.records[0]
	assert.Equal(t, snap.RoomID, rec.RoomID)
	assert.Equal(t, snap.Version, rec.Version)
	assert.Equal(t, snap.State.Losers, rec.Losers)
	assert.NotEmpty(t, rec.Losers)

	res, err := c.SubmitMove(context.Background(), moveRequest(snap, "alice", models.Action{Card: 1}))
	require.NoError(t, err)
	assert.Equal(t, CodeInvalidMove, res.Code)
	assert.Equal(t, engine.ReasonWrongPhase, res.Reason)
}

func TestCodeHTTPStatus(t *testing.T) {
	want := map[Code]int{
		CodeOK:           200,
		CodeDeduplicated: 200,
		CodeStaleVersion: 409,
		CodeRoomBusy:     423,
		CodeInvalidMove:  400,
		CodeBadRequest:   400,
		CodeRoomNotFound: 404,
		CodeServerError:  500,
	}
	for code, status := range want {
		assert.Equal(t, status, code.HTTPStatus(), code)
	}
	assert.True(t, CodeDeduplicated.Accepted())
	assert.False(t, CodeStaleVersion.Accepted())
}
