package postgres

import (
	"context"
	"fmt"

	"github.com/dukandar/khata/internal/models"
)

// CreateItem inserts a new catalog item for its owner.
func (s *PostgresStore) CreateItem(ctx context.Context, item *models.Item) error {
	err := s.db.QueryRow(ctx,
		"INSERT INTO items (user_id, name, unit, price) VALUES ($1, $2, $3, $4) RETURNING id",
		item.UserID, item.Name, item.Unit, item.Price,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// ListItems returns all catalog items owned by userID.
func (s *PostgresStore) ListItems(ctx context.Context, userID int64) ([]*models.Item, error) {
	rows, err := s.db.Query(ctx,
		"SELECT id, user_id, name, unit, price FROM items WHERE user_id = $1",
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

// DeleteItem removes the item if it belongs to userID; no-op otherwise.
func (s *PostgresStore) DeleteItem(ctx context.Context, userID, itemID int64) error {
	_, err := s.db.Exec(ctx,
		"DELETE FROM items WHERE id = $1 AND user_id = $2",
		itemID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}
