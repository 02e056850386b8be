package models

// Bill represents a finalized sale. Bills are immutable after creation:
// there is no update or delete operation, only create and read.
type Bill struct {
	// ID is the unique identifier for the bill (autoincrement).
	ID int64 `json:"id"`

	// UserID is the owning shop account.
	UserID int64 `json:"-"`

	// Total is the bill total as declared at submission time.
	Total float64 `json:"total"`

	// PaymentMethod is a free-text tag (e.g. "Cash", "UPI"). Defaults to "Cash".
	PaymentMethod string `json:"payment_method"`

	// CreatedAt is the Unix timestamp when the bill was persisted.
	CreatedAt int64 `json:"created_at"`

	// Items are the line items on the bill.
	// Empty when the bill was loaded as a listing summary.
	Items []BillItem `json:"items,omitempty"`
}

// BillItem is one line of a bill. It is a snapshot: name, unit and price are
// copied from the cart at submission time, not referenced from the catalog,
// so deleting the catalog item later leaves the bill untouched.
type BillItem struct {
	// ID is the unique identifier for the line item (autoincrement).
	ID int64 `json:"id"`

	// BillID is the owning bill.
	BillID int64 `json:"-"`

	// ItemName is the product name as sold.
	ItemName string `json:"item_name"`

	// Unit is the unit label as sold.
	Unit string `json:"unit"`

	// PricePerUnit is the unit price at time of sale.
	PricePerUnit float64 `json:"price_per_unit"`

	// Quantity is the quantity sold. Fractional quantities are allowed
	// (e.g. 1.5 kg).
	Quantity float64 `json:"quantity"`

	// Subtotal is the line amount as declared at submission time.
	Subtotal float64 `json:"subtotal"`
}
