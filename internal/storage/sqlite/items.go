package sqlite

import (
	"context"
	"fmt"

	"github.com/dukandar/khata/internal/models"
)

// CreateItem inserts a new catalog item for its owner.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO items (user_id, name, unit, price) VALUES (?, ?, ?, ?)",
		item.UserID, item.Name, item.Unit, item.Price,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read item id: %w", err)
	}
	item.ID = id

	return nil
}

// ListItems returns all catalog items owned by userID.
func (s *SQLiteStore) ListItems(ctx context.Context, userID int64) ([]*models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, unit, price FROM items WHERE user_id = ?",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Unit, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// DeleteItem removes the item if it belongs to userID.
// Absent or foreign-owned IDs match zero rows and the call succeeds anyway.
func (s *SQLiteStore) DeleteItem(ctx context.Context, userID, itemID int64) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM items WHERE id = ? AND user_id = ?",
		itemID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}
