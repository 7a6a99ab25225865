package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hotel-booking-be/internal/pkg/logger"
	"hotel-booking-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventHandler processes a decoded event. Returning an error NAKs the
// message so JetStream redelivers it.
type EventHandler func(ctx context.Context, event events.Event) error

// Subscriber drains the durable event stream. It is the out-of-process
// counterpart to the in-memory channel bus: messages survive restarts and
// are redelivered until acked.
type Subscriber struct {
	nc  *nats.Conn
	js  jetstream.JetStream
	log logger.ILogger

	consume jetstream.ConsumeContext
}

func NewSubscriber(url string, log logger.ILogger) (*Subscriber, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &Subscriber{nc: nc, js: js, log: log}, nil
}

// Subscribe attaches handler to every event subject through a durable
// consumer named durableName, so processing resumes where it left off
// after a restart.
func (s *Subscriber) Subscribe(ctx context.Context, durableName string, handler EventHandler) error {
	consumer, err := s.js.CreateOrUpdateConsumer(ctx, streamName, jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subjectPrefix + ">",
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer %s: %w", durableName, err)
	}

	s.consume, err = consumer.Consume(func(msg jetstream.Msg) {
		event, err := decodeEventMsg(msg.Subject(), msg.Data())
		if err != nil {
			s.log.Warn("NATS", "Dropping undecodable event", map[string]interface{}{
				"subject": msg.Subject(),
				"error":   err.Error(),
			})
			msg.Term()
			return
		}

		if err := handler(context.Background(), event); err != nil {
			s.log.Warn("NATS", "Event handler failed, message will be redelivered", map[string]interface{}{
				"subject": msg.Subject(),
				"error":   err.Error(),
			})
			msg.Nak()
			return
		}

		msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	s.log.Info("NATS", "Durable consumer attached", map[string]interface{}{
		"durable": durableName,
	})
	return nil
}

// decodeEventMsg rebuilds the event envelope from a stream message: the
// type comes from the subject, the payload from the body.
func decodeEventMsg(subject string, data []byte) (events.BaseEvent, error) {
	eventType := strings.TrimPrefix(subject, subjectPrefix)
	if eventType == "" || eventType == subject {
		return events.BaseEvent{}, fmt.Errorf("subject %q is not an event subject", subject)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return events.BaseEvent{}, fmt.Errorf("unmarshal payload: %w", err)
	}

	return events.BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: time.Now(),
	}, nil
}

// Close stops the consumer and closes the connection.
func (s *Subscriber) Close() {
	if s.consume != nil {
		s.consume.Stop()
	}
	if s.nc != nil {
		s.nc.Close()
	}
}
