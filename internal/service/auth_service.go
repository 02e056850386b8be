package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dukandar/khata/internal/auth"
	"github.com/dukandar/khata/internal/models"
	"github.com/dukandar/khata/internal/storage"
)

// AuthService handles registration, login and profile management.
// Session state lives entirely in the signed token it hands out.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
	}
}

// Register creates a new shop account and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, reg auth.Registration) (*models.User, string, error) {
	user, err := s.authenticator.Register(ctx, reg)
	if err != nil {
		slog.Warn("registration failed", "username", reg.Username, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

// Login authenticates a user and returns it with a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	if username == "" || password == "" {
		return nil, "", auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		slog.Warn("login failed", "username", username)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

// GetProfile returns the owner's account record.
func (s *AuthService) GetProfile(ctx context.Context, ownerID int64) (*models.User, error) {
	if ownerID == 0 {
		return nil, ErrUnauthenticated
	}
	user, err := s.store.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

// ProfileUpdate carries the mutable profile fields.
type ProfileUpdate struct {
	Name        string `json:"name"`
	ShopName    string `json:"shop_name"`
	ShopAddress string `json:"shop_address"`
	Language    string `json:"language"`
}

// UpdateProfile edits display fields of the owner's account. Username,
// password and creation time are not editable here.
func (s *AuthService) UpdateProfile(ctx context.Context, ownerID int64, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	user.Name = update.Name
	user.ShopName = update.ShopName
	user.ShopAddress = update.ShopAddress
	if lang := strings.TrimSpace(update.Language); lang != "" {
		user.Language = lang
	}

	if err := s.store.UpdateUserProfile(ctx, user); err != nil {
		slog.Error("UpdateProfile failed", "user_id", ownerID, "error", err)
		return nil, err
	}

	slog.Info("profile updated", "user_id", ownerID)
	return user, nil
}
