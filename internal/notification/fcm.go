package notification

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/v4/messaging"
	"github.com/sharath018/food-donation-backend/utils"
)

// Channel delivers a notification to a set of recipients.
type Channel interface {
	Send(ctx context.Context, recipients []string, title, body string) error
}

// FCMChannel implements Channel over Firebase Cloud Messaging.
type FCMChannel struct{}

func NewFCMChannel() Channel {
	return &FCMChannel{}
}

// Send pushes a notification to the given device tokens.
func (f *FCMChannel) Send(ctx context.Context, recipients []string, title, body string) error {
	client := utils.FCMClient()
	if client == nil {
		return fmt.Errorf("FCM client not initialized")
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no FCM tokens provided")
	}

	if len(recipients) == 1 {
		return f.sendSingle(ctx, client, recipients[0], title, body)
	}
	return f.sendMulticast(ctx, client, recipients, title, body)
}

func (f *FCMChannel) sendSingle(ctx context.Context, client *messaging.Client, token, title, body string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				ChannelID: "request_notifications",
				Priority:  messaging.PriorityHigh,
			},
		},
	}

	id, err := client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("FCM send failed: %w", err)
	}
	log.Printf("✅ FCM message sent: %s", id)
	return nil
}

func (f *FCMChannel) sendMulticast(ctx context.Context, client *messaging.Client, tokens []string, title, body string) error {
	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				ChannelID: "request_notifications",
				Priority:  messaging.PriorityHigh,
			},
		},
	}

	resp, err := client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("FCM multicast failed: %w", err)
	}
	if resp.FailureCount > 0 {
		log.Printf("⚠️ FCM multicast: %d of %d sends failed", resp.FailureCount, len(tokens))
	}
	return nil
}
