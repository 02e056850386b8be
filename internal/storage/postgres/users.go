package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dukandar/khata/internal/models"
)

// CreateUser inserts a new user and reads back the generated ID.
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}
	if user.Language == "" {
		user.Language = "en"
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO users (name, username, password_hash, shop_name, shop_address, language, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		user.Name, user.Username, user.PasswordHash,
		user.ShopName, user.ShopAddress, user.Language, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByUsername retrieves a user by their login handle.
func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(ctx,
		`SELECT id, name, username, password_hash, shop_name, shop_address, language, created_at
		 FROM users WHERE username = $1`,
		username,
	))
}

// GetUserByID retrieves a user by their ID.
func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(ctx,
		`SELECT id, name, username, password_hash, shop_name, shop_address, language, created_at
		 FROM users WHERE id = $1`,
		id,
	))
}

func (s *PostgresStore) scanUser(row pgx.Row) (*models.User, error) {
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
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateUserProfile updates the mutable profile fields of a user.
func (s *PostgresStore) UpdateUserProfile(ctx context.Context, user *models.User) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users SET name = $1, shop_name = $2, shop_address = $3, language = $4 WHERE id = $5`,
		user.Name, user.ShopName, user.ShopAddress, user.Language, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	return nil
}
