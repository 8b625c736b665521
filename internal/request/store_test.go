package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharath018/food-donation-backend/internal/donation"
)

func testPayload(title string) *Payload {
	return &Payload{
		Title:              title,
		RequestType:        TypeGeneral,
		NumberOfPeople:     10,
		PreferredFoodTypes: []string{"Veg"},
		RequestByDateTime:  time.Date(2026, time.September, 12, 18, 30, 0, 0, time.UTC),
		Visibility:         VisibilityPrivate,
	}
}

func TestStoreCreate(t *testing.T) {
	s := NewStore()

	created := s.Create(testPayload("Evening meals"))

	require.NotEmpty(t, created.ID)
	assert.Equal(t, StatusPending, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	found, ok := s.FindByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, found)
}

func TestStoreOrdering(t *testing.T) {
	s := NewStore()

	first := s.Create(testPayload("first"))
	second := s.Create(testPayload("second"))

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestStoreInsertReplacesStaleCopy(t *testing.T) {
	s := NewStore()
	created := s.Create(testPayload("original"))

	fresh := created.Clone()
	fresh.Title = "confirmed"
	s.Insert(fresh)

	assert.Equal(t, 1, s.Len())
	found, ok := s.FindByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, "confirmed", found.Title)
}

func TestStoreUpdate(t *testing.T) {
	s := NewStore()
	created := s.Create(testPayload("before"))
	require.NoError(t, s.AttachDonations(created.ID, []donation.Donation{{ID: "d1"}}))

	p := testPayload("after")
	p.NumberOfPeople = 40
	updated, err := s.Update(created.ID, p)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, 40, updated.NumberOfPeople)
	assert.Equal(t, StatusPending, updated.Status)
	// Attached donations survive a field update.
	assert.Len(t, updated.Donations, 1)
}

func TestStoreUpdateMissingIDLeavesStoreUntouched(t *testing.T) {
	s := NewStore()
	created := s.Create(testPayload("only one"))

	_, err := s.Update("no-such-id", testPayload("ignored"))
	assert.ErrorIs(t, err, ErrNotFound)

	found, ok := s.FindByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, "only one", found.Title)
	assert.Equal(t, 1, s.Len())
}

func TestStoreSetStatus(t *testing.T) {
	s := NewStore()
	created := s.Create(testPayload("to complete"))

	updated, err := s.SetStatus(created.ID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)

	_, err = s.SetStatus("missing", StatusCancelled)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDelete(t *testing.T) {
	s := NewStore()
	created := s.Create(testPayload("temporary"))

	assert.True(t, s.Delete(created.ID))
	assert.False(t, s.Delete(created.ID))

	_, ok := s.FindByID(created.ID)
	assert.False(t, ok)
}

func TestStoreAttachDonations(t *testing.T) {
	s := NewStore()
	created := s.Create(testPayload("with donations"))

	ds := []donation.Donation{
		{ID: "d1", Quantity: 2},
		{ID: "d2", Quantity: 1},
	}
	require.NoError(t, s.AttachDonations(created.ID, ds))

	found, ok := s.FindByID(created.ID)
	require.True(t, ok)
	assert.Len(t, found.Donations, 2)

	assert.ErrorIs(t, s.AttachDonations("missing", ds), ErrNotFound)
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewStore()
	created := s.Create(testPayload("isolated"))

	held, _ := s.FindByID(created.ID)
	held.Title = "mutated outside"
	held.PreferredFoodTypes[0] = "changed"

	fresh, _ := s.FindByID(created.ID)
	assert.Equal(t, "isolated", fresh.Title)
	assert.Equal(t, "Veg", fresh.PreferredFoodTypes[0])
}

func TestStoreReplaceDedupes(t *testing.T) {
	s := NewStore()
	s.Create(testPayload("stale"))

	a := &Request{ID: "a", Title: "kept"}
	dup := &Request{ID: "a", Title: "dropped"}
	b := &Request{ID: "b", Title: "second"}
	s.Replace([]*Request{a, dup, b})

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "kept", list[0].Title)
	assert.Equal(t, "b", list[1].ID)
}
