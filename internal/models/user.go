package models

// User represents a registered shop account.
// Every item and bill in the system belongs to exactly one user.
type User struct {
	// ID is the unique identifier for the user (autoincrement).
	ID int64 `json:"id"`

	// Name is the display name of the shopkeeper.
	Name string `json:"name"`

	// Username is the unique login handle.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized in API responses.
	PasswordHash string `json:"-"`

	// ShopName is the display name of the shop, printed on bills.
	ShopName string `json:"shop_name"`

	// ShopAddress is the shop's address, printed on bills.
	ShopAddress string `json:"shop_address"`

	// Language is the preferred UI language code (default "en").
	Language string `json:"language"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`
}
