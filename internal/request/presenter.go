package request

import "fmt"

// deadlineLayout is the fixed pattern used wherever a deadline is rendered.
const deadlineLayout = "02 Jan 2006, 3:04 PM"

// donationPreviewCap is how many donations a card shows before the "+N"
// overflow marker takes over.
const donationPreviewCap = 3

// DonationPreview is one entry of the capped donation strip on a card.
type DonationPreview struct {
	ProductName    string `json:"productName"`
	ProductImage   string `json:"productImage"`
	RestaurantName string `json:"restaurantName"`
	Quantity       int    `json:"quantity"`
}

// ViewModel carries everything a list card or detail screen renders for a
// request. It is derived, never stored.
type ViewModel struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	UrgencyTag     string            `json:"urgencyTag,omitempty"`
	DeliveryTag    string            `json:"deliveryTag,omitempty"`
	VisibilityTag  string            `json:"visibilityTag"`
	Status         Status            `json:"status"`
	PeopleLabel    string            `json:"peopleLabel"`
	FoodTypes      []string          `json:"foodTypes"`
	Notes          string            `json:"notes,omitempty"`
	Deadline       string            `json:"deadline"`
	Donations      []DonationPreview `json:"donations,omitempty"`
	OverflowMarker string            `json:"overflowMarker,omitempty"`
}

// Present derives the display attributes of a request. It is pure: the
// request is read, never mutated.
func Present(r *Request) ViewModel {
	vm := ViewModel{
		ID:          r.ID,
		Title:       r.Title,
		Status:      r.Status,
		PeopleLabel: fmt.Sprintf("Feeds %d people", r.NumberOfPeople),
		FoodTypes:   append([]string(nil), r.PreferredFoodTypes...),
		Deadline:    r.RequestByDateTime.Format(deadlineLayout),
	}

	// Only urgency is flagged; General and Specific carry no tag.
	if r.RequestType == TypeUrgent {
		vm.UrgencyTag = "Urgent"
	}
	if r.DeliveryNeeded {
		vm.DeliveryTag = "Delivery needed"
	}

	// Exactly one of the two, always.
	if r.Visibility == VisibilityPublic {
		vm.VisibilityTag = "Public"
	} else {
		vm.VisibilityTag = "Private"
	}

	if r.AdditionalNotes != "" {
		vm.Notes = fmt.Sprintf("%q", r.AdditionalNotes)
	}

	// No donations section at all when nothing is attached.
	if len(r.Donations) == 0 {
		return vm
	}

	limit := len(r.Donations)
	if limit > donationPreviewCap {
		limit = donationPreviewCap
		vm.OverflowMarker = fmt.Sprintf("+%d", len(r.Donations)-donationPreviewCap)
	}
	for _, d := range r.Donations[:limit] {
		vm.Donations = append(vm.Donations, DonationPreview{
			ProductName:    d.Product.Name,
			ProductImage:   d.Product.Image,
			RestaurantName: d.Restaurant.Name,
			Quantity:       d.Quantity,
		})
	}

	return vm
}
