// Package seed creates the data a fresh portal needs before anyone can sign in
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appModels "github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/pkg/apperrors"
	"github.com/familyhub/portal/internal/pkg/auth"
)

// Admin is the seeded administrator account
type Admin struct {
	Email    string
	Password string
	FullName string
}

// AccountStore is the part of the user repository the seed needs
type AccountStore interface {
	CreateAccount(ctx context.Context, account *appModels.NewAccount) (*appModels.Profile, error)
	GetCredentialsByEmail(ctx context.Context, email string) (*appModels.AuthUser, error)
	SetRole(ctx context.Context, userID uuid.UUID, role appModels.Role) error
}

// CreateDefaultData makes sure the configured administrator exists and holds the admin role.
// An existing account keeps its password and is only promoted.
func CreateDefaultData(ctx context.Context, users AccountStore, admin Admin, lgr zerolog.Logger) error {
	if admin.Email == "" {
		lgr.Info().Msg("No seed administrator configured, skipping default data")
		return nil
	}
	email := strings.ToLower(strings.TrimSpace(admin.Email))

	existing, err := users.GetCredentialsByEmail(ctx, email)
	switch {
	case err == nil:
		if err := users.SetRole(ctx, existing.ID, appModels.RoleAdmin); err != nil {
			return fmt.Errorf("failed to promote seed administrator: %w", err)
		}
		lgr.Info().Str("email", email).Msg("Seed administrator already exists, role ensured")
		return nil
	case !errors.Is(err, apperrors.ErrUserNotFound):
		return fmt.Errorf("failed to look up seed administrator: %w", err)
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash seed administrator password: %w", err)
	}

	profile, err := users.CreateAccount(ctx, &appModels.NewAccount{
		Email:        email,
		PasswordHash: hash,
		FullName:     admin.FullName,
		Role:         appModels.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to create seed administrator: %w", err)
	}

	lgr.Info().Str("email", email).Str("userID", profile.ID.String()).Msg("Seed administrator created")
	return nil
}
