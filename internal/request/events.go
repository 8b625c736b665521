package request

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/sharath018/food-donation-backend/utils"
)

// Lifecycle event actions published to the request event topic.
const (
	EventRequestCreated   = "REQUEST_CREATED"
	EventRequestUpdated   = "REQUEST_UPDATED"
	EventRequestDeleted   = "REQUEST_DELETED"
	EventRequestCompleted = "REQUEST_COMPLETED"
	EventRequestCancelled = "REQUEST_CANCELLED"
)

// EventPublisher announces request lifecycle transitions to downstream
// consumers (matching, analytics).
type EventPublisher interface {
	PublishRequestEvent(ctx context.Context, action string, orgID string, r *Request) error
}

type lifecycleEvent struct {
	Action    string    `json:"action"`
	OrgID     string    `json:"org_id"`
	Request   *Request  `json:"request,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// KafkaEvents publishes lifecycle events through the shared Kafka writer.
type KafkaEvents struct {
	topic string
}

func NewKafkaEvents(topic string) *KafkaEvents {
	return &KafkaEvents{topic: topic}
}

func (k *KafkaEvents) PublishRequestEvent(ctx context.Context, action string, orgID string, r *Request) error {
	payload, err := json.Marshal(lifecycleEvent{
		Action:    action,
		OrgID:     orgID,
		Request:   r,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	if err := utils.PublishMessage(ctx, k.topic, action, payload); err != nil {
		log.Printf("⚠️ request event publish failed for %s: %v", action, err)
		return err
	}
	return nil
}
