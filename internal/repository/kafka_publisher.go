package repository

import (
	"context"

	"QuotePulse/internal/domain/models"
	pkgkafka "QuotePulse/pkg/kafka"
)

// KafkaSnapshotPublisher publishes quote snapshots to one topic, keyed by
// snapshot timestamp so partitioning stays stable per cycle.
type KafkaSnapshotPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaSnapshotPublisher creates a Kafka-backed snapshot publisher.
func NewKafkaSnapshotPublisher(producer *pkgkafka.Producer, topic string) *KafkaSnapshotPublisher {
	return &KafkaSnapshotPublisher{producer: producer, topic: topic}
}

func (p *KafkaSnapshotPublisher) Publish(ctx context.Context, snapshot models.QuoteSnapshot) error {
	key := []byte(snapshot.Timestamp.UTC().Format("2006-01-02T15:04:05Z"))
	return p.producer.Publish(ctx, p.topic, key, snapshot)
}

func (p *KafkaSnapshotPublisher) Close() error {
	return p.producer.Close()
}
