package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"

	"github.com/dukandar/khata/internal/models"
	"github.com/dukandar/khata/internal/storage"
)

var (
	ErrUnauthenticated = errors.New("not logged in")
	ErrInvalidPrice    = errors.New("price must be a non-negative number")
	ErrMissingName     = errors.New("item name required")
)

// CatalogService owns per-shop item definitions.
type CatalogService struct {
	store storage.Store
}

// NewCatalogService creates a catalog service backed by the given store.
func NewCatalogService(store storage.Store) *CatalogService {
	return &CatalogService{store: store}
}

// AddItem validates and persists a new catalog item for the owner.
// Duplicate names are allowed.
func (s *CatalogService) AddItem(ctx context.Context, ownerID int64, name, unit string, price float64) (*models.Item, error) {
	if ownerID == 0 {
		return nil, ErrUnauthenticated
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrMissingName
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return nil, ErrInvalidPrice
	}
	if unit == "" {
		unit = "unit"
	}

	item := &models.Item{
		UserID: ownerID,
		Name:   name,
		Unit:   unit,
		Price:  price,
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		slog.Error("AddItem failed", "user_id", ownerID, "error", err)
		return nil, err
	}

	slog.Info("item added", "user_id", ownerID, "item_id", item.ID)
	return item, nil
}

// ListItems returns the owner's catalog.
func (s *CatalogService) ListItems(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	if ownerID == 0 {
		return nil, ErrUnauthenticated
	}
	return s.store.ListItems(ctx, ownerID)
}

// DeleteItem removes an item from the owner's catalog. Deleting an absent or
// foreign-owned item succeeds without effect; historical bills keep their
// snapshots either way.
func (s *CatalogService) DeleteItem(ctx context.Context, ownerID, itemID int64) error {
	if ownerID == 0 {
		return ErrUnauthenticated
	}
	if err := s.store.DeleteItem(ctx, ownerID, itemID); err != nil {
		slog.Error("DeleteItem failed", "user_id", ownerID, "item_id", itemID, "error", err)
		return err
	}
	return nil
}
