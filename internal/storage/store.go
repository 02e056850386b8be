// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/dukandar/khata/internal/models"
)

// ErrNotFound is returned by ownership-scoped lookups when the row does not
// exist or belongs to another user. Callers cannot tell the two apart, which
// keeps foreign IDs indistinguishable from absent ones.
var ErrNotFound = errors.New("not found")

// Store defines the interface for persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user and populates user.ID.
	// Fails if the username is already taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by login handle.
	// Returns (nil, nil) if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) if no such user exists.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// UpdateUserProfile updates name, shop name, shop address and language
	// for the given user. Username and password hash are not touched here.
	UpdateUserProfile(ctx context.Context, user *models.User) error

	// CreateItem persists a new catalog item and populates item.ID.
	CreateItem(ctx context.Context, item *models.Item) error

	// ListItems returns all catalog items owned by userID.
	ListItems(ctx context.Context, userID int64) ([]*models.Item, error)

	// DeleteItem deletes the item only if it belongs to userID.
	// Deleting an absent or foreign-owned item is a silent no-op.
	DeleteItem(ctx context.Context, userID, itemID int64) error

	// CreateBill persists a bill and all of its line items as a single
	// transaction and populates bill.ID. Either every row commits or none do.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// ListBills returns bill summaries (no line items) owned by userID,
	// newest first.
	ListBills(ctx context.Context, userID int64) ([]*models.Bill, error)

	// GetBill retrieves a bill with its line items, scoped to userID.
	// Returns ErrNotFound for absent or foreign-owned IDs alike.
	GetBill(ctx context.Context, userID, billID int64) (*models.Bill, error)

	// Close releases any resources held by the store.
	Close() error
}
