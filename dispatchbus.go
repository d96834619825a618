// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: _examples/tomtom215-cartographus/internal/eventprocessor
// (message.NewMessage usage, watermill Pub/Sub wiring).

package pubnub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// dispatchBus fans decoded subscribe-v2 messages out to per-channel
// subscribers (obtained via [Context.SubscribeChannel]) without the
// callback backend's watcher goroutine
// needing to know who is listening on which channel. Built on watermill's
// in-memory gochannel Pub/Sub, the same library the example pack uses for
// its own event routing, here repurposed from cross-service event
// distribution to in-process fan-out of decoded envelope records.
type dispatchBus struct {
	pubsub *gochannel.GoChannel
}

func newDispatchBus() *dispatchBus {
	return &dispatchBus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NopLogger{},
		),
	}
}

// Close releases the underlying Pub/Sub resources.
func (b *dispatchBus) Close() error {
	return b.pubsub.Close()
}

// Publish delivers one decoded [SubscribeMessage] to every subscriber of
// its channel.
func (b *dispatchBus) Publish(rec SubscribeMessage) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return b.pubsub.Publish(rec.Channel, msg)
}

// Subscribe returns a channel of decoded [SubscribeMessage] values for the
// given channel name, active until ctx is cancelled.
func (b *dispatchBus) Subscribe(ctx context.Context, channel string) (<-chan SubscribeMessage, error) {
	raw, err := b.pubsub.Subscribe(ctx, channel)
	if err != nil {
		return nil, err
	}
	out := make(chan SubscribeMessage, cap(raw))
	go func() {
		defer close(out)
		for msg := range raw {
			var rec SubscribeMessage
			if err := json.Unmarshal(msg.Payload, &rec); err != nil {
				msg.Nack()
				continue
			}
			msg.Ack()
			select {
			case out <- rec:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

var errBusClosed = fmt.Errorf("pubnub: dispatch bus is closed")
