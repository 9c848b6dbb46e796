package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type Publisher interface {
	Publish(ctx context.Context, topic, key string, event Envelope) error
	Close() error
}

type KafkaPublisher struct {
	w *kafka.Writer
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		},
	}
}

// Publish writes event to topic keyed by key so one entity's events stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, event Envelope) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: marshal %s: %w", event.Type, err)
	}
	if err := p.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  event.OccurredAt,
	}); err != nil {
		return fmt.Errorf("kafka: write %s: %w", topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// Nop drops events; used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, Envelope) error { return nil }

func (Nop) Close() error { return nil }

func New(brokers []string) Publisher {
	if len(brokers) == 0 {
		return Nop{}
	}
	return NewKafkaPublisher(brokers)
}
