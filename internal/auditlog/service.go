package auditlog

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/sharath018/food-donation-backend/config"
	"github.com/sharath018/food-donation-backend/utils"
)

type Service interface {
	LogAction(ctx context.Context, userID *string, requestID *string, action string, details map[string]interface{}, ip string, status string) error
}

type service struct {
	topic string
}

func NewService(cfg *config.Config) Service {
	return &service{topic: cfg.KafkaAuditTopic}
}

// LogAction publishes a new audit log entry. Audit delivery is best effort:
// a publish failure is logged locally and never fails the audited action.
func (s *service) LogAction(ctx context.Context, userID *string, requestID *string, action string, details map[string]interface{}, ip string, status string) error {
	if details == nil {
		details = make(map[string]interface{})
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	entry := &AuditLog{
		UserID:    userID,
		RequestID: requestID,
		Action:    action,
		Details:   string(detailsJSON),
		IPAddress: ip,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	if err := utils.PublishMessage(ctx, s.topic, action, payload); err != nil {
		log.Printf("⚠️ audit publish failed for %s: %v", action, err)
	}
	return nil
}
