package request

import (
	"context"
	"fmt"

	"github.com/sharath018/food-donation-backend/internal/auditlog"
	"github.com/sharath018/food-donation-backend/internal/notification"
)

// Gateway is the platform API collaborator: the system of record for
// requests. The service keeps the in-memory store and the Redis cache in
// sync with what the gateway confirms.
type Gateway interface {
	FetchRequests(ctx context.Context, orgID string) ([]*Request, error)
	SubmitCreate(ctx context.Context, orgID string, p *Payload) (*Request, error)
	SubmitUpdate(ctx context.Context, id string, p *Payload) (*Request, error)
	SubmitDelete(ctx context.Context, id string) error
	SubmitStatus(ctx context.Context, id string, st Status) (*Request, error)
}

type Service interface {
	ListRequests(ctx context.Context, orgID string) ([]*Request, error)
	GetRequest(ctx context.Context, orgID, id string) (*Request, error)
	CreateRequest(ctx context.Context, orgID string, p *Payload, ip string) (*Request, error)
	UpdateRequest(ctx context.Context, orgID, id string, p *Payload, ip string) (*Request, error)
	DeleteRequest(ctx context.Context, orgID, id string, ip string) error
	SetRequestStatus(ctx context.Context, orgID, id string, st Status, ip string) (*Request, error)
	SubmitDraft(ctx context.Context, orgID string, d FormDraft, ip string) (*Request, error)
	UpdateFromDraft(ctx context.Context, orgID, id string, d FormDraft, ip string) (*Request, error)
}

type service struct {
	store     *Store
	gateway   Gateway
	cache     *Cache
	validator *Validator
	events    EventPublisher
	auditSvc  auditlog.Service
	notifSvc  notification.Service
}

func NewService(store *Store, gateway Gateway, cache *Cache, events EventPublisher, auditSvc auditlog.Service, notifSvc notification.Service) Service {
	return &service{
		store:     store,
		gateway:   gateway,
		cache:     cache,
		validator: NewValidator(),
		events:    events,
		auditSvc:  auditSvc,
		notifSvc:  notifSvc,
	}
}

// ListRequests serves the organisation's requests from cache when possible,
// otherwise fetches from the platform and reseeds the session store.
func (s *service) ListRequests(ctx context.Context, orgID string) ([]*Request, error) {
	if cached := s.cache.GetList(ctx, orgID); cached != nil {
		s.store.Replace(cached)
		return cached, nil
	}

	requests, err := s.gateway.FetchRequests(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("fetch requests failed: %w", err)
	}

	s.store.Replace(requests)
	s.cache.SetList(ctx, orgID, requests)
	return s.store.List(), nil
}

func (s *service) GetRequest(ctx context.Context, orgID, id string) (*Request, error) {
	if r, ok := s.store.FindByID(id); ok {
		return r, nil
	}

	// Session store may be cold; refresh it once from the platform.
	if _, err := s.ListRequests(ctx, orgID); err != nil {
		return nil, err
	}
	if r, ok := s.store.FindByID(id); ok {
		return r, nil
	}
	return nil, ErrNotFound
}

// CreateRequest submits the payload to the platform, then commits locally.
// The store is never touched when the network call fails.
func (s *service) CreateRequest(ctx context.Context, orgID string, p *Payload, ip string) (*Request, error) {
	confirmed, err := s.gateway.SubmitCreate(ctx, orgID, p)
	if err != nil {
		s.audit(ctx, nil, "REQUEST_CREATED", map[string]interface{}{
			"title": p.Title,
			"error": err.Error(),
		}, ip, "failure")
		return nil, fmt.Errorf("submit request failed: %w", err)
	}

	var created *Request
	if confirmed != nil {
		created = s.store.Insert(confirmed)
	} else {
		created = s.store.Create(p)
	}

	s.cache.InvalidateList(ctx, orgID)
	s.publish(ctx, EventRequestCreated, orgID, created)
	s.audit(ctx, &created.ID, "REQUEST_CREATED", map[string]interface{}{
		"title":       created.Title,
		"requestType": created.RequestType,
		"people":      created.NumberOfPeople,
	}, ip, "success")

	if s.notifSvc != nil {
		// Fire and forget; delivery must not hold up the response.
		go s.notifSvc.NotifyOrg(context.WithoutCancel(ctx), orgID, "Request posted", created.Title+" is now live")
	}

	return created, nil
}

func (s *service) UpdateRequest(ctx context.Context, orgID, id string, p *Payload, ip string) (*Request, error) {
	confirmed, err := s.gateway.SubmitUpdate(ctx, id, p)
	if err != nil {
		s.audit(ctx, &id, "REQUEST_UPDATED", map[string]interface{}{
			"error": err.Error(),
		}, ip, "failure")
		return nil, fmt.Errorf("submit update failed: %w", err)
	}

	// The platform accepted the update; a cold session store must not turn
	// that success into a not-found.
	updated, storeErr := s.store.Update(id, p)
	if storeErr != nil {
		if confirmed == nil {
			s.cache.InvalidateList(ctx, orgID)
			return nil, storeErr
		}
		updated = s.store.Insert(confirmed)
	}

	s.cache.InvalidateList(ctx, orgID)
	s.publish(ctx, EventRequestUpdated, orgID, updated)
	s.audit(ctx, &id, "REQUEST_UPDATED", map[string]interface{}{
		"title": updated.Title,
	}, ip, "success")

	return updated, nil
}

func (s *service) DeleteRequest(ctx context.Context, orgID, id string, ip string) error {
	if err := s.gateway.SubmitDelete(ctx, id); err != nil {
		s.audit(ctx, &id, "REQUEST_DELETED", map[string]interface{}{
			"error": err.Error(),
		}, ip, "failure")
		return fmt.Errorf("delete request failed: %w", err)
	}

	// The platform already removed it; a cold session store is not an error.
	s.store.Delete(id)

	s.cache.InvalidateList(ctx, orgID)
	s.publish(ctx, EventRequestDeleted, orgID, nil)
	s.audit(ctx, &id, "REQUEST_DELETED", nil, ip, "success")
	return nil
}

// SetRequestStatus is the external completion/decline action: the only way a
// request enters a terminal state.
func (s *service) SetRequestStatus(ctx context.Context, orgID, id string, st Status, ip string) (*Request, error) {
	if st != StatusCompleted && st != StatusCancelled {
		return nil, fmt.Errorf("unsupported status transition: %s", st)
	}

	confirmed, err := s.gateway.SubmitStatus(ctx, id, st)
	if err != nil {
		return nil, fmt.Errorf("submit status failed: %w", err)
	}

	updated, storeErr := s.store.SetStatus(id, st)
	if storeErr != nil {
		if confirmed == nil {
			s.cache.InvalidateList(ctx, orgID)
			return nil, storeErr
		}
		updated = s.store.Insert(confirmed)
	}

	s.cache.InvalidateList(ctx, orgID)
	action := EventRequestCompleted
	if st == StatusCancelled {
		action = EventRequestCancelled
	}
	s.publish(ctx, action, orgID, updated)
	s.audit(ctx, &id, action, map[string]interface{}{"status": st}, ip, "success")

	if s.notifSvc != nil && st == StatusCompleted {
		go s.notifSvc.NotifyOrg(context.WithoutCancel(ctx), orgID, "Request fulfilled", updated.Title+" has been completed")
	}

	return updated, nil
}

// SubmitDraft validates a draft and creates the request from it.
func (s *service) SubmitDraft(ctx context.Context, orgID string, d FormDraft, ip string) (*Request, error) {
	payload, err := s.validator.Validate(d)
	if err != nil {
		return nil, err
	}
	return s.CreateRequest(ctx, orgID, payload, ip)
}

// UpdateFromDraft validates a draft and applies it to an existing request.
func (s *service) UpdateFromDraft(ctx context.Context, orgID, id string, d FormDraft, ip string) (*Request, error) {
	payload, err := s.validator.Validate(d)
	if err != nil {
		return nil, err
	}
	return s.UpdateRequest(ctx, orgID, id, payload, ip)
}

func (s *service) publish(ctx context.Context, action, orgID string, r *Request) {
	if s.events == nil {
		return
	}
	_ = s.events.PublishRequestEvent(ctx, action, orgID, r)
}

func (s *service) audit(ctx context.Context, requestID *string, action string, details map[string]interface{}, ip, status string) {
	if s.auditSvc == nil {
		return
	}
	var userID *string
	if uid, ok := auditlog.UserIDFrom(ctx); ok {
		userID = &uid
	}
	_ = s.auditSvc.LogAction(ctx, userID, requestID, action, details, ip, status)
}
