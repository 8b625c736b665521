package request

import (
	"time"

	"github.com/sharath018/food-donation-backend/internal/donation"
)

// RequestType drives the urgency tagging on request cards.
type RequestType string

const (
	TypeGeneral  RequestType = "General"
	TypeUrgent   RequestType = "Urgent"
	TypeSpecific RequestType = "Specific"
)

// Visibility controls whether a request is listed publicly.
type Visibility string

const (
	VisibilityPublic  Visibility = "Public"
	VisibilityPrivate Visibility = "Private"
)

// Status is lifecycle-controlled; it is never edited directly through the form.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Request is a standing ask from an organisation for food by a deadline.
// Donations are attached by the donation subsystem and merely displayed here;
// their count never changes the status automatically.
type Request struct {
	ID                 string              `json:"id"`
	Title              string              `json:"title"`
	RequestType        RequestType         `json:"requestType"`
	NumberOfPeople     int                 `json:"numberOfPeople"`
	PreferredFoodTypes []string            `json:"preferredFoodTypes"`
	DeliveryNeeded     bool                `json:"deliveryNeeded"`
	RequestByDateTime  time.Time           `json:"requestByDateTime"`
	AdditionalNotes    string              `json:"additionalNotes,omitempty"`
	Visibility         Visibility          `json:"visibility"`
	Status             Status              `json:"status"`
	Donations          []donation.Donation `json:"donations,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// Clone returns a deep enough copy that callers cannot reach the store's
// backing slices.
func (r *Request) Clone() *Request {
	out := *r
	out.PreferredFoodTypes = append([]string(nil), r.PreferredFoodTypes...)
	out.Donations = append([]donation.Donation(nil), r.Donations...)
	return &out
}

// FormDraft mirrors the editable fields of a Request in UI-friendly primitive
// form: the people count stays raw text so intermediate invalid input survives
// typing, and the deadline stays an ISO string (or empty) until submission.
type FormDraft struct {
	Title              string   `json:"title"`
	RequestType        string   `json:"requestType"`
	NumberOfPeople     string   `json:"numberOfPeople"`
	PreferredFoodTypes []string `json:"preferredFoodTypes"`
	DeliveryNeeded     bool     `json:"deliveryNeeded"`
	RequestByDateTime  string   `json:"requestByDateTime"`
	AdditionalNotes    string   `json:"additionalNotes"`
	Public             bool     `json:"public"`
}

// Payload is the normalized, store-ready shape produced by the validator.
type Payload struct {
	Title              string      `json:"title"`
	RequestType        RequestType `json:"requestType"`
	NumberOfPeople     int         `json:"numberOfPeople"`
	PreferredFoodTypes []string    `json:"preferredFoodTypes"`
	DeliveryNeeded     bool        `json:"deliveryNeeded"`
	RequestByDateTime  time.Time   `json:"requestByDateTime"`
	AdditionalNotes    string      `json:"additionalNotes,omitempty"`
	Visibility         Visibility  `json:"visibility"`
}
