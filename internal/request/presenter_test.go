package request

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharath018/food-donation-backend/internal/donation"
)

func presentable() *Request {
	return &Request{
		ID:                 "req-1",
		Title:              "Weekend meal drive",
		RequestType:        TypeGeneral,
		NumberOfPeople:     25,
		PreferredFoodTypes: []string{"Veg", "Snacks"},
		RequestByDateTime:  time.Date(2026, time.September, 12, 18, 30, 0, 0, time.UTC),
		Visibility:         VisibilityPrivate,
		Status:             StatusPending,
	}
}

func donations(n int) []donation.Donation {
	out := make([]donation.Donation, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, donation.Donation{
			ID:       fmt.Sprintf("d%d", i),
			Quantity: i,
			Product: donation.Product{
				Name:  fmt.Sprintf("Meal box %d", i),
				Image: fmt.Sprintf("https://img.example/%d.png", i),
			},
			Restaurant: donation.Restaurant{Name: fmt.Sprintf("Kitchen %d", i)},
		})
	}
	return out
}

func TestPresentTags(t *testing.T) {
	t.Run("urgent type shows the urgency tag", func(t *testing.T) {
		r := presentable()
		r.RequestType = TypeUrgent
		assert.Equal(t, "Urgent", Present(r).UrgencyTag)
	})

	t.Run("general and specific types carry no urgency tag", func(t *testing.T) {
		for _, typ := range []RequestType{TypeGeneral, TypeSpecific} {
			r := presentable()
			r.RequestType = typ
			assert.Empty(t, Present(r).UrgencyTag, "type %s", typ)
		}
	})

	t.Run("delivery tag only when delivery is needed", func(t *testing.T) {
		r := presentable()
		assert.Empty(t, Present(r).DeliveryTag)

		r.DeliveryNeeded = true
		assert.Equal(t, "Delivery needed", Present(r).DeliveryTag)
	})

	t.Run("visibility tag is always present", func(t *testing.T) {
		r := presentable()
		assert.Equal(t, "Private", Present(r).VisibilityTag)

		r.Visibility = VisibilityPublic
		assert.Equal(t, "Public", Present(r).VisibilityTag)
	})
}

func TestPresentLabels(t *testing.T) {
	r := presentable()
	vm := Present(r)

	assert.Equal(t, "Feeds 25 people", vm.PeopleLabel)
	assert.Equal(t, "12 Sep 2026, 6:30 PM", vm.Deadline)
	assert.Empty(t, vm.Notes)

	r.AdditionalNotes = "no onions please"
	assert.Equal(t, `"no onions please"`, Present(r).Notes)
}

func TestPresentDonationPreview(t *testing.T) {
	t.Run("no donations means no donation section", func(t *testing.T) {
		vm := Present(presentable())
		assert.Empty(t, vm.Donations)
		assert.Empty(t, vm.OverflowMarker)
	})

	t.Run("up to three donations show without overflow", func(t *testing.T) {
		r := presentable()
		r.Donations = donations(3)

		vm := Present(r)
		assert.Len(t, vm.Donations, 3)
		assert.Empty(t, vm.OverflowMarker)
	})

	t.Run("five donations show three previews and +2", func(t *testing.T) {
		r := presentable()
		r.Donations = donations(5)

		vm := Present(r)
		require.Len(t, vm.Donations, 3)
		assert.Equal(t, "+2", vm.OverflowMarker)
		assert.Equal(t, "Meal box 1", vm.Donations[0].ProductName)
		assert.Equal(t, "Kitchen 3", vm.Donations[2].RestaurantName)
	})
}

func TestPresentIsPure(t *testing.T) {
	r := presentable()
	r.Donations = donations(5)
	before := r.Clone()

	vm := Present(r)
	vm.FoodTypes[0] = "changed"

	assert.Equal(t, before, r)
}
