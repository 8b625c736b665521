package notification

import "time"

// DeviceToken is one registered FCM device for an organisation.
type DeviceToken struct {
	Token        string    `json:"deviceToken"`
	OrgID        string    `json:"orgId"`
	DeviceType   string    `json:"deviceType"` // android, ios, web
	RegisteredAt time.Time `json:"registeredAt"`
}

// RegisterDeviceRequest registers a device for push notifications.
type RegisterDeviceRequest struct {
	Token      string `json:"deviceToken" binding:"required"`
	DeviceType string `json:"deviceType" binding:"omitempty,oneof=android ios web"`
}
