package utils

import (
	"context"
	"log"

	"github.com/segmentio/kafka-go"
	"github.com/sharath018/food-donation-backend/config"
)

var kafkaWriter *kafka.Writer

// InitializeKafka sets up the shared writer. Topics are carried per message
// so lifecycle events and audit logs share one connection.
func InitializeKafka(cfg *config.Config) {
	kafkaWriter = &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBrokers...),
		Balancer: &kafka.LeastBytes{},
	}
	log.Printf("✅ Kafka writer initialized for brokers %v", cfg.KafkaBrokers)
}

// PublishMessage writes one message to a topic. A missing writer is not an
// error; event publishing is best effort and the caller keeps going.
func PublishMessage(ctx context.Context, topic, key string, value []byte) error {
	if kafkaWriter == nil {
		return nil
	}
	return kafkaWriter.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
}

// CloseKafka flushes and closes the shared writer.
func CloseKafka() {
	if kafkaWriter == nil {
		return
	}
	if err := kafkaWriter.Close(); err != nil {
		log.Printf("⚠️ Kafka writer close failed: %v", err)
	}
}
