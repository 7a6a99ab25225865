package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const channelTopic = "events"

// metadata key carrying the event code on in-process messages.
const metaEventType = "event_type"

// ChannelBus is an in-process pub/sub bridge. It carries the same events the
// NATS publisher ships externally, so side effects like notification emails
// run inside the same process without a broker round trip.
type ChannelBus struct {
	ps *gochannel.GoChannel
}

func NewChannelBus() *ChannelBus {
	ps := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NopLogger{})

	return &ChannelBus{ps: ps}
}

// Publish sends an event to all in-process subscribers.
func (c *ChannelBus) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(metaEventType, event.EventType())

	if err := c.ps.Publish(channelTopic, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.EventType(), err)
	}
	return nil
}

// Subscribe runs handler for every published event until ctx is cancelled.
// Handler errors are swallowed after acking; in-process side effects are
// best-effort and must not wedge the channel.
func (c *ChannelBus) Subscribe(ctx context.Context, handler func(ctx context.Context, event Event) error) error {
	messages, err := c.ps.Subscribe(ctx, channelTopic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to event channel: %w", err)
	}

	go func() {
		for msg := range messages {
			var payload map[string]interface{}
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				msg.Ack()
				continue
			}

			event := BaseEvent{
				Type:       msg.Metadata.Get(metaEventType),
				Data:       payload,
				OccurredAt: time.Now(),
			}

			_ = handler(ctx, event)
			msg.Ack()
		}
	}()

	return nil
}

// Close shuts the channel down and unblocks all subscribers.
func (c *ChannelBus) Close() error {
	return c.ps.Close()
}
