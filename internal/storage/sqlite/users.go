package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dukandar/khata/internal/models"
)

// CreateUser inserts a new user into the database.
// The UNIQUE constraint on username surfaces duplicates as an error.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}
	if user.Language == "" {
		user.Language = "en"
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (name, username, password_hash, shop_name, shop_address, language, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Name, user.Username, user.PasswordHash,
		user.ShopName, user.ShopAddress, user.Language, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetUserByUsername retrieves a user by their login handle.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, name, username, password_hash, shop_name, shop_address, language, created_at
		 FROM users WHERE username = ?`,
		username,
	))
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, name, username, password_hash, shop_name, shop_address, language, created_at
		 FROM users WHERE id = ?`,
		id,
	))
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.PasswordHash,
		&user.ShopName,
		&user.ShopAddress,
		&user.Language,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateUserProfile updates the mutable profile fields of a user.
func (s *SQLiteStore) UpdateUserProfile(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = ?, shop_name = ?, shop_address = ?, language = ? WHERE id = ?`,
		user.Name, user.ShopName, user.ShopAddress, user.Language, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	return nil
}
