package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/pkg/apperrors"
	"github.com/familyhub/portal/internal/pkg/dberrors"
)

// UserRepository handles accounts, credentials and roles
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateAccount inserts the auth user, its profile and its role in one transaction
func (r *UserRepository) CreateAccount(ctx context.Context, account *models.NewAccount) (*models.Profile, error) {
	role := account.Role
	if !role.Valid() {
		role = models.RoleMember
	}

	profile := &models.Profile{
		FullName: account.FullName,
		Email:    account.Email,
		Birthday: account.Birthday,
	}

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO auth_users (email, password_hash) VALUES ($1, $2) RETURNING id`,
			account.Email, account.PasswordHash,
		).Scan(&profile.ID)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "auth_users_email_key") {
				return apperrors.ErrEmailAlreadyExists
			}
			return fmt.Errorf("error creating auth user: %w", err)
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO profiles (id, full_name, email, birthday) VALUES ($1, $2, $3, $4)
			 RETURNING created_at, updated_at`,
			profile.ID, profile.FullName, profile.Email, profile.Birthday,
		).Scan(&profile.CreatedAt, &profile.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error creating profile: %w", err)
		}

		if _, err := tx.Exec(ctx, `INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, profile.ID, role); err != nil {
			return fmt.Errorf("error assigning role: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// GetCredentialsByEmail loads the credential row for login
func (r *UserRepository) GetCredentialsByEmail(ctx context.Context, email string) (*models.AuthUser, error) {
	var user models.AuthUser
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM auth_users WHERE lower(email) = lower($1)`,
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving credentials: %w", err)
	}
	return &user, nil
}

// EmailExists checks whether an account uses the email
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM auth_users WHERE lower(email) = lower($1))`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

// GetRole returns the user's role; a missing row means member
func (r *UserRepository) GetRole(ctx context.Context, userID uuid.UUID) (models.Role, error) {
	var role models.Role
	err := r.db.QueryRow(ctx, `SELECT role FROM user_roles WHERE user_id = $1`, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.RoleMember, nil
		}
		return models.RoleMember, fmt.Errorf("error retrieving role: %w", err)
	}
	return role, nil
}

// SetRole assigns a role, replacing any previous one
func (r *UserRepository) SetRole(ctx context.Context, userID uuid.UUID, role models.Role) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role`,
		userID, role,
	)
	if err != nil {
		return fmt.Errorf("error setting role: %w", err)
	}
	return nil
}
