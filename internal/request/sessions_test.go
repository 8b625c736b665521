package request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormSessionsLifecycle(t *testing.T) {
	store := NewStore()
	svc := NewService(store, newFakeGateway(), nil, nil, nil, nil)
	sessions := NewFormSessions(svc)

	id, ctrl := sessions.Open("org-1", nil, "10.0.0.1")
	require.NotEmpty(t, id)

	found, ok := sessions.Get(id)
	require.True(t, ok)
	assert.Same(t, ctrl, found)

	sessions.Close(id)
	_, ok = sessions.Get(id)
	assert.False(t, ok)
}

func TestFormSessionSubmitCommitsThroughService(t *testing.T) {
	store := NewStore()
	svc := NewService(store, newFakeGateway(), nil, nil, nil, nil)
	sessions := NewFormSessions(svc)

	_, ctrl := sessions.Open("org-1", nil, "10.0.0.1")
	require.NoError(t, ctrl.SetTitle("Session drive"))
	require.NoError(t, ctrl.SetNumberOfPeople("12"))
	require.NoError(t, ctrl.ToggleFoodType("Veg"))
	require.NoError(t, ctrl.PickDate(time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, ctrl.PickTime(time.Date(1, time.January, 1, 18, 30, 0, 0, time.UTC)))

	committed, err := ctrl.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Session drive", committed.Title)
	assert.Equal(t, 1, store.Len())
}

func TestFormSessionEditFlowUpdatesExistingRequest(t *testing.T) {
	store := NewStore()
	gw := newFakeGateway()
	svc := NewService(store, gw, nil, nil, nil, nil)
	sessions := NewFormSessions(svc)

	created, err := svc.CreateRequest(context.Background(), "org-1", testPayload("original"), "ip")
	require.NoError(t, err)

	_, ctrl := sessions.Open("org-1", created, "ip")
	require.NoError(t, ctrl.SetTitle("renamed"))

	committed, err := ctrl.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, created.ID, committed.ID)
	assert.Equal(t, "renamed", committed.Title)
}
