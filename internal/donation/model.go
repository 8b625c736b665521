package donation

import "time"

// Product is the food item pledged by a restaurant.
type Product struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description,omitempty"`
}

// Restaurant is the seller making the pledge.
type Restaurant struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Donation is a pledged contribution toward a request. Donations are created
// by the donation subsystem on the platform side; this service only attaches
// and displays them.
type Donation struct {
	ID         string     `json:"id"`
	RequestID  string     `json:"requestId"`
	Quantity   int        `json:"quantity"`
	Product    Product    `json:"product"`
	Restaurant Restaurant `json:"restaurant"`
	CreatedAt  time.Time  `json:"createdAt"`
}
