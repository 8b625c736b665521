package request

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharath018/food-donation-backend/internal/auditlog"
	"github.com/sharath018/food-donation-backend/internal/notification"
)

// fakeGateway is an in-memory stand-in for the platform API.
type fakeGateway struct {
	remote    map[string]*Request
	listErr   error
	createErr error
	updateErr error
	deleteErr error
	statusErr error
	fetches   int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{remote: make(map[string]*Request)}
}

func (g *fakeGateway) FetchRequests(ctx context.Context, orgID string) ([]*Request, error) {
	g.fetches++
	if g.listErr != nil {
		return nil, g.listErr
	}
	out := make([]*Request, 0, len(g.remote))
	for _, r := range g.remote {
		out = append(out, r.Clone())
	}
	return out, nil
}

func (g *fakeGateway) SubmitCreate(ctx context.Context, orgID string, p *Payload) (*Request, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	r := &Request{
		ID:                 "remote-" + p.Title,
		Title:              p.Title,
		RequestType:        p.RequestType,
		NumberOfPeople:     p.NumberOfPeople,
		PreferredFoodTypes: append([]string(nil), p.PreferredFoodTypes...),
		RequestByDateTime:  p.RequestByDateTime,
		Visibility:         p.Visibility,
		Status:             StatusPending,
		CreatedAt:          time.Now().UTC(),
	}
	g.remote[r.ID] = r
	return r.Clone(), nil
}

func (g *fakeGateway) SubmitUpdate(ctx context.Context, id string, p *Payload) (*Request, error) {
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	r, ok := g.remote[id]
	if !ok {
		return nil, ErrNotFound
	}
	r.Title = p.Title
	return r.Clone(), nil
}

func (g *fakeGateway) SubmitDelete(ctx context.Context, id string) error {
	if g.deleteErr != nil {
		return g.deleteErr
	}
	delete(g.remote, id)
	return nil
}

func (g *fakeGateway) SubmitStatus(ctx context.Context, id string, st Status) (*Request, error) {
	if g.statusErr != nil {
		return nil, g.statusErr
	}
	r, ok := g.remote[id]
	if !ok {
		return nil, ErrNotFound
	}
	r.Status = st
	return r.Clone(), nil
}

type recordedEvent struct {
	action string
	orgID  string
}

type fakeEvents struct {
	published []recordedEvent
}

func (e *fakeEvents) PublishRequestEvent(ctx context.Context, action, orgID string, r *Request) error {
	e.published = append(e.published, recordedEvent{action: action, orgID: orgID})
	return nil
}

func newTestService(t *testing.T) (Service, *Store, *fakeGateway, *fakeEvents) {
	t.Helper()
	store := NewStore()
	gw := newFakeGateway()
	events := &fakeEvents{}
	svc := NewService(store, gw, nil, events, nil, nil)
	return svc, store, gw, events
}

func TestServiceListRequests(t *testing.T) {
	svc, store, gw, _ := newTestService(t)
	ctx := context.Background()

	_, err := gw.SubmitCreate(ctx, "org-1", testPayload("remote one"))
	require.NoError(t, err)

	list, err := svc.ListRequests(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "remote one", list[0].Title)
	assert.Equal(t, 1, store.Len())

	gw.listErr = errors.New("platform down")
	_, err = svc.ListRequests(ctx, "org-1")
	assert.Error(t, err)
}

func TestServiceGetRequestRefreshesColdStore(t *testing.T) {
	svc, store, gw, _ := newTestService(t)
	ctx := context.Background()

	created, err := gw.SubmitCreate(ctx, "org-1", testPayload("cold fetch"))
	require.NoError(t, err)
	require.Equal(t, 0, store.Len())

	got, err := svc.GetRequest(ctx, "org-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "cold fetch", got.Title)

	_, err = svc.GetRequest(ctx, "org-1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceCreateRequest(t *testing.T) {
	svc, store, _, events := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRequest(ctx, "org-1", testPayload("new drive"), "10.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, 1, store.Len())
	require.Len(t, events.published, 1)
	assert.Equal(t, EventRequestCreated, events.published[0].action)
	assert.Equal(t, "org-1", events.published[0].orgID)
}

func TestServiceCreateRequestPlatformFailureLeavesStoreUntouched(t *testing.T) {
	svc, store, gw, events := newTestService(t)
	gw.createErr = errors.New("platform rejected")

	_, err := svc.CreateRequest(context.Background(), "org-1", testPayload("doomed"), "10.0.0.1")

	require.Error(t, err)
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, events.published)
}

func TestServiceUpdateRequest(t *testing.T) {
	svc, _, _, events := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRequest(ctx, "org-1", testPayload("before"), "ip")
	require.NoError(t, err)

	updated, err := svc.UpdateRequest(ctx, "org-1", created.ID, testPayload("after"), "ip")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, EventRequestUpdated, events.published[len(events.published)-1].action)
}

func TestServiceDeleteRequest(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRequest(ctx, "org-1", testPayload("to remove"), "ip")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRequest(ctx, "org-1", created.ID, "ip"))
	assert.Equal(t, 0, store.Len())
}

func TestServiceSetRequestStatus(t *testing.T) {
	svc, _, _, events := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRequest(ctx, "org-1", testPayload("drive"), "ip")
	require.NoError(t, err)

	t.Run("only terminal states are accepted", func(t *testing.T) {
		_, err := svc.SetRequestStatus(ctx, "org-1", created.ID, StatusPending, "ip")
		assert.Error(t, err)
	})

	t.Run("completion flows through", func(t *testing.T) {
		updated, err := svc.SetRequestStatus(ctx, "org-1", created.ID, StatusCompleted, "ip")
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, updated.Status)
		assert.Equal(t, EventRequestCompleted, events.published[len(events.published)-1].action)
	})
}

func TestServiceSubmitDraft(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()

	t.Run("invalid draft never reaches the platform", func(t *testing.T) {
		_, err := svc.SubmitDraft(ctx, "org-1", FormDraft{}, "ip")
		assert.ErrorIs(t, err, ErrEmptyTitle)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("valid draft creates the request", func(t *testing.T) {
		created, err := svc.SubmitDraft(ctx, "org-1", validDraft(), "ip")
		require.NoError(t, err)
		assert.Equal(t, "Weekend meal drive", created.Title)
		assert.Equal(t, 1, store.Len())
	})
}

func TestServiceUpdateRequestColdStore(t *testing.T) {
	svc, store, gw, _ := newTestService(t)
	ctx := context.Background()

	created, err := gw.SubmitCreate(ctx, "org-1", testPayload("original"))
	require.NoError(t, err)
	require.Equal(t, 0, store.Len())

	// A platform-accepted update must not come back as not-found just
	// because this session never listed the request.
	p := testPayload("renamed")
	updated, err := svc.UpdateRequest(ctx, "org-1", created.ID, p, "ip")
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "renamed", updated.Title)

	held, ok := store.FindByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, "renamed", held.Title)
}

func TestServiceDeleteRequestColdStore(t *testing.T) {
	svc, store, gw, _ := newTestService(t)
	ctx := context.Background()

	created, err := gw.SubmitCreate(ctx, "org-1", testPayload("remote only"))
	require.NoError(t, err)
	require.Equal(t, 0, store.Len())

	require.NoError(t, svc.DeleteRequest(ctx, "org-1", created.ID, "ip"))
	assert.NotContains(t, gw.remote, created.ID)
}

func TestServiceSetRequestStatusColdStore(t *testing.T) {
	svc, store, gw, _ := newTestService(t)
	ctx := context.Background()

	created, err := gw.SubmitCreate(ctx, "org-1", testPayload("remote only"))
	require.NoError(t, err)
	require.Equal(t, 0, store.Len())

	updated, err := svc.SetRequestStatus(ctx, "org-1", created.ID, StatusCompleted, "ip")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)

	held, ok := store.FindByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, held.Status)
}

type fakeNotifier struct {
	notified chan string
}

func (n *fakeNotifier) RegisterDevice(orgID string, req notification.RegisterDeviceRequest) notification.DeviceToken {
	return notification.DeviceToken{}
}
func (n *fakeNotifier) UnregisterDevice(orgID, token string) bool { return false }
func (n *fakeNotifier) TokensForOrg(orgID string) []string        { return nil }
func (n *fakeNotifier) NotifyOrg(ctx context.Context, orgID, title, body string) {
	n.notified <- title
}

func TestServiceCreateRequestNotifiesInBackground(t *testing.T) {
	store := NewStore()
	notifier := &fakeNotifier{notified: make(chan string, 1)}
	svc := NewService(store, newFakeGateway(), nil, nil, nil, notifier)

	_, err := svc.CreateRequest(context.Background(), "org-1", testPayload("drive"), "ip")
	require.NoError(t, err)

	select {
	case title := <-notifier.notified:
		assert.Equal(t, "Request posted", title)
	case <-time.After(time.Second):
		t.Fatal("no notification dispatched")
	}
}

type auditEntry struct {
	userID    *string
	requestID *string
	action    string
	status    string
}

type fakeAudit struct {
	entries []auditEntry
}

func (a *fakeAudit) LogAction(ctx context.Context, userID *string, requestID *string, action string, details map[string]interface{}, ip string, status string) error {
	a.entries = append(a.entries, auditEntry{userID: userID, requestID: requestID, action: action, status: status})
	return nil
}

func TestServiceAuditCarriesActingUser(t *testing.T) {
	store := NewStore()
	audit := &fakeAudit{}
	svc := NewService(store, newFakeGateway(), nil, nil, audit, nil)

	ctx := auditlog.WithUserID(context.Background(), "user-7")
	_, err := svc.CreateRequest(ctx, "org-1", testPayload("drive"), "10.0.0.1")
	require.NoError(t, err)

	require.Len(t, audit.entries, 1)
	require.NotNil(t, audit.entries[0].userID)
	assert.Equal(t, "user-7", *audit.entries[0].userID)
	assert.Equal(t, "success", audit.entries[0].status)

	// Unauthenticated contexts still audit, just without attribution.
	_, err = svc.CreateRequest(context.Background(), "org-1", testPayload("anon"), "10.0.0.1")
	require.NoError(t, err)
	require.Len(t, audit.entries, 2)
	assert.Nil(t, audit.entries[1].userID)
}
