package request

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Validation failures surfaced to the user, one per submit attempt.
var (
	ErrEmptyTitle         = errors.New("title must not be empty")
	ErrInvalidPeopleCount = errors.New("number of people must be a whole number greater than zero")
	ErrNoFoodTypeSelected = errors.New("select at least one preferred food type")
	ErrMissingDeadline    = errors.New("request-by date and time must be set")
)

// Validator gates submission of a FormDraft. Checks run in a fixed order and
// stop at the first failure so the UI shows exactly one message per attempt.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns the normalized payload for a draft, or exactly one of the
// validation errors above. The draft itself is never mutated.
func (v *Validator) Validate(d FormDraft) (*Payload, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	people, err := strconv.Atoi(strings.TrimSpace(d.NumberOfPeople))
	if err != nil || people <= 0 {
		return nil, ErrInvalidPeopleCount
	}

	foodTypes := dedupeFoodTypes(d.PreferredFoodTypes)
	if len(foodTypes) == 0 {
		return nil, ErrNoFoodTypeSelected
	}

	if d.RequestByDateTime == "" {
		return nil, ErrMissingDeadline
	}
	deadline, err := time.Parse(time.RFC3339, d.RequestByDateTime)
	if err != nil {
		return nil, ErrMissingDeadline
	}

	visibility := VisibilityPrivate
	if d.Public {
		visibility = VisibilityPublic
	}

	return &Payload{
		Title:              title,
		RequestType:        normalizeType(d.RequestType),
		NumberOfPeople:     people,
		PreferredFoodTypes: foodTypes,
		DeliveryNeeded:     d.DeliveryNeeded,
		RequestByDateTime:  deadline,
		AdditionalNotes:    d.AdditionalNotes,
		Visibility:         visibility,
	}, nil
}

// dedupeFoodTypes drops repeated entries while keeping insertion order, so
// the display order the user built up survives normalization.
func dedupeFoodTypes(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, f := range in {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

func normalizeType(t string) RequestType {
	switch RequestType(t) {
	case TypeUrgent:
		return TypeUrgent
	case TypeSpecific:
		return TypeSpecific
	default:
		return TypeGeneral
	}
}
