// internal/pubsub/memory.go
package pubsub

import (
	"context"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
)

// subscriberBuffer is how many undelivered messages a subscriber may fall behind.
const subscriberBuffer = 64

// MemoryBus is an in-process Bus.
type MemoryBus struct {
	mu   sync.RWMutex
	subs map[string]map[*memSub]struct{}
	log  *logrus.Entry
}

// NewMemoryBus returns an empty bus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		subs: make(map[string]map[*memSub]struct{}),
		log:  logrus.WithField("component", "pubsub.memory"),
	}
}

type memSub struct {
	bus     *MemoryBus
	channel string
	ch      chan []byte
	done    chan struct{}
	once    sync.Once
}

func (s *memSub) Messages() <-chan []byte { return s.ch }

func (s *memSub) Close() error {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs[s.channel], s)
		if len(s.bus.subs[s.channel]) == 0 {
			delete(s.bus.subs, s.channel)
		}
		s.bus.mu.Unlock()
		close(s.ch)
		close(s.done)
	})
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := &memSub{bus: b, channel: channel, ch: make(chan []byte, subscriberBuffer), done: make(chan struct{})}
	b.mu.Lock()
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[*memSub]struct{})
	}
	b.subs[channel][s] = struct{}{}
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()
	return s, nil
}

// Publish never blocks on a slow subscriber: a full buffer drops the message.
func (b *MemoryBus) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for s := range b.subs[channel] {
		select {
		case s.ch <- slices.Clone(payload):
		default:
			b.log.WithField("channel", channel).Warn("subscriber buffer full, dropping message")
		}
	}
	return nil
}

// Subscribers returns how many live subscriptions channel has.
func (b *MemoryBus) Subscribers(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[channel])
}
