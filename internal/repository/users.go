package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medibook/internal/domain"
	"medibook/internal/models"
	"medibook/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserRepository persists the signed-in user's profile and auth marker.
type UserRepository struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewUserRepository(st domain.Store, logger *zerolog.Logger) *UserRepository {
	return &UserRepository{store: st, logger: logger}
}

// GetProfile returns the stored profile, or a zero profile when none has
// been saved yet.
func (r *UserRepository) GetProfile(ctx context.Context) (models.UserProfile, error) {
	var profile models.UserProfile

	raw, err := r.store.Read(ctx, store.KeyUserData)
	if errors.Is(err, store.ErrKeyNotFound) {
		return profile, nil
	}
	if err != nil {
		return profile, fmt.Errorf("failed to load profile: %w", err)
	}

	if err := json.Unmarshal(raw, &profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return profile, nil
}

// SaveProfile replaces the stored profile blob.
func (r *UserRepository) SaveProfile(ctx context.Context, profile models.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := r.store.Write(ctx, store.KeyUserData, raw); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetAuthStatus returns the stored sign-in marker; absent means signed out.
func (r *UserRepository) GetAuthStatus(ctx context.Context) (models.AuthStatus, error) {
	var status models.AuthStatus

	raw, err := r.store.Read(ctx, store.KeyAuthStatus)
	if errors.Is(err, store.ErrKeyNotFound) {
		return status, nil
	}
	if err != nil {
		return status, fmt.Errorf("failed to load auth status: %w", err)
	}

	if err := json.Unmarshal(raw, &status); err != nil {
		return models.AuthStatus{}, fmt.Errorf("failed to unmarshal auth status: %w", err)
	}
	return status, nil
}

// SignIn stores the profile and marks the session as signed in with a fresh
// local session token.
func (r *UserRepository) SignIn(ctx context.Context, profile models.UserProfile) (models.AuthStatus, error) {
	if err := r.SaveProfile(ctx, profile); err != nil {
		return models.AuthStatus{}, err
	}

	status := models.AuthStatus{
		SignedIn:     true,
		SessionToken: uuid.NewString(),
		SignedInAt:   time.Now(),
	}

	raw, err := json.Marshal(status)
	if err != nil {
		return models.AuthStatus{}, fmt.Errorf("failed to marshal auth status: %w", err)
	}
	if err := r.store.Write(ctx, store.KeyAuthStatus, raw); err != nil {
		return models.AuthStatus{}, fmt.Errorf("failed to save auth status: %w", err)
	}

	r.logger.Info().Str("user", profile.Name).Msg("user signed in")
	return status, nil
}

// SignOut clears the stored profile and writes a signed-out marker.
func (r *UserRepository) SignOut(ctx context.Context) error {
	if err := r.store.Delete(ctx, store.KeyUserData); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}

	raw, err := json.Marshal(models.AuthStatus{SignedIn: false})
	if err != nil {
		return fmt.Errorf("failed to marshal auth status: %w", err)
	}
	if err := r.store.Write(ctx, store.KeyAuthStatus, raw); err != nil {
		return fmt.Errorf("failed to save auth status: %w", err)
	}

	r.logger.Info().Msg("user signed out")
	return nil
}
