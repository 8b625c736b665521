package request

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sharath018/food-donation-backend/internal/donation"
)

// ErrNotFound is returned when a request id does not exist in the store.
var ErrNotFound = errors.New("request not found")

// Store is the single source of truth for the requests of the current
// session. It is a transient cache in front of the platform API, not the
// system of record. The backing slice is only ever touched under the mutex
// and only copies leave the store, so callers cannot break its invariants.
type Store struct {
	mu       sync.RWMutex
	requests []*Request
}

func NewStore() *Store {
	return &Store{}
}

// Create inserts a new pending request at the front of the collection
// (most-recent-first) and returns a copy of it.
func (s *Store) Create(p *Payload) *Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	r := &Request{
		ID:                 uuid.NewString(),
		Title:              p.Title,
		RequestType:        p.RequestType,
		NumberOfPeople:     p.NumberOfPeople,
		PreferredFoodTypes: append([]string(nil), p.PreferredFoodTypes...),
		DeliveryNeeded:     p.DeliveryNeeded,
		RequestByDateTime:  p.RequestByDateTime,
		AdditionalNotes:    p.AdditionalNotes,
		Visibility:         p.Visibility,
		Status:             StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	s.requests = append([]*Request{r}, s.requests...)
	return r.Clone()
}

// Insert places an already-persisted request (confirmed by the platform) at
// the front of the collection, replacing any stale copy with the same id.
func (s *Store) Insert(r *Request) *Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.requests {
		if existing.ID == r.ID {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			break
		}
	}
	s.requests = append([]*Request{r.Clone()}, s.requests...)
	return r.Clone()
}

// Update merges the payload into the request matched by id. The id and the
// attached donations are left untouched.
func (s *Store) Update(id string, p *Payload) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.find(id)
	if r == nil {
		return nil, ErrNotFound
	}

	r.Title = p.Title
	r.RequestType = p.RequestType
	r.NumberOfPeople = p.NumberOfPeople
	r.PreferredFoodTypes = append([]string(nil), p.PreferredFoodTypes...)
	r.DeliveryNeeded = p.DeliveryNeeded
	r.RequestByDateTime = p.RequestByDateTime
	r.AdditionalNotes = p.AdditionalNotes
	r.Visibility = p.Visibility
	r.UpdatedAt = time.Now().UTC()

	return r.Clone(), nil
}

// SetStatus moves a request into a lifecycle state. Used by the external
// completion/decline actions, never by the form.
func (s *Store) SetStatus(id string, st Status) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.find(id)
	if r == nil {
		return nil, ErrNotFound
	}

	r.Status = st
	r.UpdatedAt = time.Now().UTC()
	return r.Clone(), nil
}

// AttachDonations replaces the donations displayed on a request.
func (s *Store) AttachDonations(id string, ds []donation.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.find(id)
	if r == nil {
		return ErrNotFound
	}

	r.Donations = append([]donation.Donation(nil), ds...)
	return nil
}

// Delete removes the matching request and reports whether a removal occurred.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.requests {
		if r.ID == id {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a copy of the matching request.
func (s *Store) FindByID(id string) (*Request, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r := s.find(id); r != nil {
		return r.Clone(), true
	}
	return nil, false
}

// List returns copies of all requests, most recent first.
func (s *Store) List() []*Request {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Request, 0, len(s.requests))
	for _, r := range s.requests {
		out = append(out, r.Clone())
	}
	return out
}

// Replace seeds the store from a platform fetch, dropping whatever was held
// before. Duplicated ids in the input are collapsed to the first occurrence.
func (s *Store) Replace(requests []*Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(requests))
	next := make([]*Request, 0, len(requests))
	for _, r := range requests {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		next = append(next, r.Clone())
	}
	s.requests = next
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.requests)
}

// find must be called with the mutex held.
func (s *Store) find(id string) *Request {
	for _, r := range s.requests {
		if r.ID == id {
			return r
		}
	}
	return nil
}
