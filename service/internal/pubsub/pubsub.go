// internal/pubsub/pubsub.go
package pubsub

import (
	"context"
)

// Publisher delivers a payload to everyone subscribed to a channel.
// Delivery is at most once; a channel with no subscribers drops the payload.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Subscription is a live feed of one channel. Messages stops being written
// to once Close returns or the subscribing context is done.
type Subscription interface {
	Messages() <-chan []byte
	Close() error
}

// Subscriber opens subscriptions.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (Subscription, error)
}

// Bus is both ends of the transport.
type Bus interface {
	Publisher
	Subscriber
}

// SeatChannel is the channel carrying one participant's views of a room.
func SeatChannel(roomID, actorID string) string {
	return "room:" + roomID + ":seat:" + actorID
}
