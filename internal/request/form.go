package request

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"
)

// PickerState is the explicit date/time picker sequencing state. Modelling it
// as one enum instead of two booleans keeps the date-then-time chaining and
// its exception (re-editing the date alone) a checkable transition table.
type PickerState string

const (
	PickerNone PickerState = "none"
	PickerDate PickerState = "date"
	PickerTime PickerState = "time"
)

var (
	// ErrSubmitInFlight rejects a second submit while one is outstanding,
	// so repeated taps cannot create duplicate requests.
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	// ErrFormClosed is returned for operations on a closed form, including
	// a submission whose form was cancelled while the network call ran.
	ErrFormClosed = errors.New("form is closed")
)

// Committer persists a validated payload. The request service implements it
// against the platform API and the store.
type Committer interface {
	CreateRequest(ctx context.Context, p *Payload) (*Request, error)
	UpdateRequest(ctx context.Context, id string, p *Payload) (*Request, error)
}

// FormController owns one FormDraft for the lifetime of an open form. Every
// field edit and the two-phase date/time flow go through it; on submit it
// runs the validator and hands the payload to the committer.
type FormController struct {
	mu        sync.Mutex
	validator *Validator
	committer Committer

	draft      FormDraft
	source     *Request
	picker     PickerState
	closed     bool
	submitting bool
}

func NewFormController(v *Validator, c Committer) *FormController {
	return &FormController{validator: v, committer: c, picker: PickerNone}
}

// Open resets the controller for a fresh create flow (source nil) or an edit
// flow, copying the source request's fields into the draft.
func (f *FormController) Open(source *Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = false
	f.submitting = false
	f.picker = PickerNone

	if source == nil {
		f.source = nil
		f.draft = FormDraft{
			RequestType:        string(TypeGeneral),
			PreferredFoodTypes: []string{},
		}
		return
	}

	f.source = source.Clone()
	f.draft = FormDraft{
		Title:              source.Title,
		RequestType:        string(source.RequestType),
		NumberOfPeople:     strconv.Itoa(source.NumberOfPeople),
		PreferredFoodTypes: append([]string(nil), source.PreferredFoodTypes...),
		DeliveryNeeded:     source.DeliveryNeeded,
		RequestByDateTime:  source.RequestByDateTime.Format(time.RFC3339),
		AdditionalNotes:    source.AdditionalNotes,
		Public:             source.Visibility == VisibilityPublic,
	}
}

// Draft returns a copy of the current draft.
func (f *FormController) Draft() FormDraft {
	f.mu.Lock()
	defer f.mu.Unlock()

	d := f.draft
	d.PreferredFoodTypes = append([]string(nil), f.draft.PreferredFoodTypes...)
	return d
}

func (f *FormController) Picker() PickerState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.picker
}

func (f *FormController) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Editing reports whether the controller is editing a persisted request.
func (f *FormController) Editing() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.source == nil {
		return "", false
	}
	return f.source.ID, true
}

func (f *FormController) SetTitle(title string) error {
	return f.edit(func() { f.draft.Title = title })
}

func (f *FormController) SetRequestType(t string) error {
	return f.edit(func() { f.draft.RequestType = t })
}

func (f *FormController) SetNumberOfPeople(raw string) error {
	return f.edit(func() { f.draft.NumberOfPeople = raw })
}

func (f *FormController) SetDeliveryNeeded(needed bool) error {
	return f.edit(func() { f.draft.DeliveryNeeded = needed })
}

func (f *FormController) SetNotes(notes string) error {
	return f.edit(func() { f.draft.AdditionalNotes = notes })
}

func (f *FormController) SetVisibility(public bool) error {
	return f.edit(func() { f.draft.Public = public })
}

// ToggleFoodType adds the food type if absent and removes it if present.
func (f *FormController) ToggleFoodType(food string) error {
	return f.edit(func() {
		for i, existing := range f.draft.PreferredFoodTypes {
			if existing == food {
				f.draft.PreferredFoodTypes = append(
					f.draft.PreferredFoodTypes[:i], f.draft.PreferredFoodTypes[i+1:]...)
				return
			}
		}
		f.draft.PreferredFoodTypes = append(f.draft.PreferredFoodTypes, food)
	})
}

// OpenDatePicker starts the date selection pass.
func (f *FormController) OpenDatePicker() error {
	return f.edit(func() { f.picker = PickerDate })
}

// OpenTimePicker starts the time selection pass on its own.
func (f *FormController) OpenTimePicker() error {
	return f.edit(func() { f.picker = PickerTime })
}

// DismissPicker closes the open picker without a value; the prior deadline
// is left untouched.
func (f *FormController) DismissPicker() error {
	return f.edit(func() { f.picker = PickerNone })
}

// PickDate applies the chosen calendar date to the deadline, keeping a
// previously chosen clock time. On the initial flow, when no deadline was
// set yet, the time picker is chained next; re-editing the date of an
// existing deadline ends the flow instead.
func (f *FormController) PickDate(picked time.Time) error {
	return f.edit(func() {
		chain := f.draft.RequestByDateTime == ""
		current := f.currentDeadline()
		f.draft.RequestByDateTime = ApplyDate(current, picked).Format(time.RFC3339)
		if chain {
			f.picker = PickerTime
		} else {
			f.picker = PickerNone
		}
	})
}

// PickTime applies the chosen clock time to the deadline, keeping the
// chosen calendar date (or today's date when none was chosen).
func (f *FormController) PickTime(picked time.Time) error {
	return f.edit(func() {
		current := f.currentDeadline()
		f.draft.RequestByDateTime = ApplyTime(current, picked).Format(time.RFC3339)
		f.picker = PickerNone
	})
}

// Submit validates the draft and commits it: create when the form was opened
// fresh, update when it was opened on a source request. Only one submission
// may be outstanding; a form cancelled mid-flight discards the late result.
func (f *FormController) Submit(ctx context.Context) (*Request, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrFormClosed
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}

	payload, err := f.validator.Validate(f.draft)
	if err != nil {
		// Stay in editing with the draft intact for correction.
		f.mu.Unlock()
		return nil, err
	}

	f.submitting = true
	source := f.source
	f.mu.Unlock()

	var committed *Request
	if source == nil {
		committed, err = f.committer.CreateRequest(ctx, payload)
	} else {
		committed, err = f.committer.UpdateRequest(ctx, source.ID, payload)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if f.closed {
		// Cancelled while the network call was outstanding: the in-flight
		// operation finished, its result is dropped.
		return nil, ErrFormClosed
	}
	if err != nil {
		// Network or store failure never discards the draft.
		return nil, err
	}

	f.closed = true
	f.draft = FormDraft{}
	f.source = nil
	return committed, nil
}

// Cancel discards the draft without touching the store.
func (f *FormController) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.draft = FormDraft{}
	f.source = nil
	f.picker = PickerNone
}

// edit runs a single-field mutation while the form is open and no submit is
// outstanding.
func (f *FormController) edit(apply func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrFormClosed
	}
	if f.submitting {
		return ErrSubmitInFlight
	}
	apply()
	return nil
}

// currentDeadline must be called with the mutex held.
func (f *FormController) currentDeadline() time.Time {
	if f.draft.RequestByDateTime == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, f.draft.RequestByDateTime)
	if err != nil {
		return time.Time{}
	}
	return t
}
