package domain

import "time"

// Coffee is a catalog product. IDs are 24-character hexadecimal catalog ids
// kept for compatibility with the storefront's existing product references.
type Coffee struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	RoastLevel string    `json:"roastLevel"`
	Price      int64     `json:"price"`
	Images     []string  `json:"images,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CoffeeSummary is the projection of a coffee embedded in admin subscription
// listings.
type CoffeeSummary struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Price  int64    `json:"price"`
	Images []string `json:"images,omitempty"`
}

// Summary returns the listing projection of the coffee.
func (c Coffee) Summary() CoffeeSummary {
	return CoffeeSummary{ID: c.ID, Name: c.Name, Price: c.Price, Images: c.Images}
}
