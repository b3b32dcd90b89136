// internal/pubsub/redis.go
package pubsub

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisBus is a Bus on Redis PUBLISH/SUBSCRIBE, so views reach participants
// connected to any server process.
type RedisBus struct {
	rdb *redis.Client
}

// NewRedisBus wraps an open client.
func NewRedisBus(rdb *redis.Client) *RedisBus {
	return &RedisBus{rdb: rdb}
}

func (b *RedisBus) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := b.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", channel, err)
	}
	return nil
}

type redisSub struct {
	ps   *redis.PubSub
	ch   chan []byte
	once sync.Once
	err  error
}

func (s *redisSub) Messages() <-chan []byte { return s.ch }

func (s *redisSub) Close() error {
	s.once.Do(func() { s.err = s.ps.Close() })
	return s.err
}

// Subscribe waits for the server to confirm the subscription, so a publish
// issued after Subscribe returns is delivered.
func (b *RedisBus) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	ps := b.rdb.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, fmt.Errorf("redis subscribe %s: %w", channel, err)
	}
	s := &redisSub{ps: ps, ch: make(chan []byte, subscriberBuffer)}

	go func() {
		defer close(s.ch)
		in := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				s.Close()
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				select {
				case s.ch <- []byte(msg.Payload):
				case <-ctx.Done():
					s.Close()
					return
				}
			}
		}
	}()
	return s, nil
}
