package models

// Item represents a priced catalog entry owned by one shop.
// Items are immutable once created; a price change is a delete plus
// re-create. Duplicate names are allowed.
type Item struct {
	// ID is the unique identifier for the item (autoincrement).
	ID int64 `json:"id"`

	// UserID is the owning shop account.
	UserID int64 `json:"-"`

	// Name is the product name (free text, e.g. "Sugar").
	Name string `json:"name"`

	// Unit is the unit label the price refers to (e.g. "kg", "liter", "unit").
	Unit string `json:"unit"`

	// Price is the unit price. Non-negative.
	Price float64 `json:"price"`
}
