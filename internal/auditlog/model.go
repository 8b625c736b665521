package auditlog

import "time"

// AuditLog is one audit trail entry. Entries are published to the audit
// topic; durable storage and querying happen on the platform side.
type AuditLog struct {
	UserID    *string   `json:"user_id,omitempty"`    // nullable (e.g. unauthenticated failure)
	RequestID *string   `json:"request_id,omitempty"` // nullable (not all actions touch a request)
	Action    string    `json:"action"`
	Details   string    `json:"details"` // freeform JSON details
	IPAddress string    `json:"ip_address"`
	Status    string    `json:"status"` // success/failure
	CreatedAt time.Time `json:"created_at"`
}
