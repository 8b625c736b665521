package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sharath018/food-donation-backend/config"
	"google.golang.org/api/option"
)

var (
	firebaseApp    *firebase.App
	firebaseClient *messaging.Client
	fcmOnce        sync.Once
	fcmInitErr     error
)

// InitFirebase initializes the Firebase Admin SDK and FCM client once. A
// missing credentials file disables push notifications without failing the
// process.
func InitFirebase(cfg *config.Config) error {
	fcmOnce.Do(func() {
		ctx := context.Background()

		credentialsPath := cfg.FCMCredentialsPath
		if credentialsPath == "" {
			credentialsPath = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		}
		if credentialsPath == "" {
			fcmInitErr = fmt.Errorf("FCM credentials path not configured")
			return
		}
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			fcmInitErr = fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
			return
		}

		opt := option.WithCredentialsFile(credentialsPath)
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FCMProjectID}, opt)
		if err != nil {
			fcmInitErr = fmt.Errorf("firebase app init failed: %w", err)
			return
		}

		client, err := app.Messaging(ctx)
		if err != nil {
			fcmInitErr = fmt.Errorf("FCM client init failed: %w", err)
			return
		}

		firebaseApp = app
		firebaseClient = client
		log.Printf("✅ Firebase initialized for project %s", cfg.FCMProjectID)
	})
	return fcmInitErr
}

// FCMClient returns the shared messaging client, or nil when FCM is disabled.
func FCMClient() *messaging.Client {
	return firebaseClient
}

// IsFCMEnabled reports whether push notifications can be sent.
func IsFCMEnabled() bool {
	return firebaseClient != nil
}

// GetInitError returns why FCM is disabled, if it is.
func GetInitError() error {
	return fcmInitErr
}
