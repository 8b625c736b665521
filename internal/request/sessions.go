package request

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// FormSessions hands out one FormController per open form so mobile clients
// drive the authoring state machine server-side. Sessions are transient:
// closing the form (submit or cancel) removes them.
type FormSessions struct {
	mu       sync.Mutex
	sessions map[string]*FormController
	svc      Service
}

func NewFormSessions(svc Service) *FormSessions {
	return &FormSessions{
		sessions: make(map[string]*FormController),
		svc:      svc,
	}
}

// Open creates a draft session, prefilled from source when editing.
func (m *FormSessions) Open(orgID string, source *Request, ip string) (string, *FormController) {
	ctrl := NewFormController(NewValidator(), &boundCommitter{svc: m.svc, orgID: orgID, ip: ip})
	ctrl.Open(source)

	id := uuid.NewString()
	m.mu.Lock()
	m.sessions[id] = ctrl
	m.mu.Unlock()
	return id, ctrl
}

// Get returns the controller for a session id.
func (m *FormSessions) Get(id string) (*FormController, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctrl, ok := m.sessions[id]
	return ctrl, ok
}

// Close drops a session. The controller itself decides what closing means.
func (m *FormSessions) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// boundCommitter pins the service's create/update operations to the session's
// organisation so the controller's Committer stays request-shaped.
type boundCommitter struct {
	svc   Service
	orgID string
	ip    string
}

func (b *boundCommitter) CreateRequest(ctx context.Context, p *Payload) (*Request, error) {
	return b.svc.CreateRequest(ctx, b.orgID, p, b.ip)
}

func (b *boundCommitter) UpdateRequest(ctx context.Context, id string, p *Payload) (*Request, error) {
	return b.svc.UpdateRequest(ctx, b.orgID, id, p, b.ip)
}
