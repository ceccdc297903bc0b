package repository

import (
	"context"
	"fmt"

	"IntraPull/internal/domain/models"
	pkgkafka "IntraPull/pkg/kafka"
)

// KafkaBarPublisher publishes cleaned bars to a Kafka topic, keyed by symbol
// so a symbol's bars stay ordered.
type KafkaBarPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaBarPublisher creates a bar publisher for the given topic.
func NewKafkaBarPublisher(producer *pkgkafka.Producer, topic string) *KafkaBarPublisher {
	return &KafkaBarPublisher{producer: producer, topic: topic}
}

type barEnvelope struct {
	Symbol string     `json:"symbol"`
	Bar    models.Bar `json:"bar"`
}

// PublishBatch sends one message per bar.
func (p *KafkaBarPublisher) PublishBatch(ctx context.Context, symbol string, bars []models.Bar) error {
	if len(bars) == 0 {
		return nil
	}

	msgs := make([]pkgkafka.Message, 0, len(bars))
	for _, b := range bars {
		msgs = append(msgs, pkgkafka.Message{
			Key:   []byte(symbol),
			Value: barEnvelope{Symbol: symbol, Bar: b},
		})
	}

	if err := p.producer.PublishBatch(ctx, p.topic, msgs); err != nil {
		return fmt.Errorf("publish bars: %w", err)
	}
	return nil
}

// Close closes the underlying producer.
func (p *KafkaBarPublisher) Close() error {
	return p.producer.Close()
}
