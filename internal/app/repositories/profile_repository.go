package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/pkg/apperrors"
)

var profileColumns = []string{
	"id", "full_name", "email", "avatar_url", "bio", "phone", "location", "birthday", "created_at", "updated_at",
}

// ProfileRepository handles database operations for profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.AvatarURL, &p.Bio, &p.Phone, &p.Location, &p.Birthday, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID retrieves a profile by its ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	sql, args, err := psql.Select(profileColumns...).From("profiles").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	profile, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("profile not found")
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	return profile, nil
}

func (r *ProfileRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Profile, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return profiles, nil
}

// List returns every profile ordered by full name
func (r *ProfileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	return r.list(ctx, psql.Select(profileColumns...).From("profiles").OrderBy("full_name ASC"))
}

// ListWithBirthday returns the profiles that have a birthday set
func (r *ProfileRepository) ListWithBirthday(ctx context.Context) ([]*models.Profile, error) {
	return r.list(ctx, psql.Select(profileColumns...).From("profiles").Where("birthday IS NOT NULL"))
}

// Count returns the number of profiles
func (r *ProfileRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("profiles"))
}

// Update saves the editable profile fields
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	sql, args, err := psql.Update("profiles").
		Set("full_name", profile.FullName).
		Set("bio", profile.Bio).
		Set("phone", profile.Phone).
		Set("location", profile.Location).
		Set("birthday", profile.Birthday).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": profile.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&profile.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewResourceNotFoundError("profile not found")
		}
		return fmt.Errorf("error updating profile: %w", err)
	}
	return nil
}

// UpdateAvatar sets the avatar URL of a profile
func (r *ProfileRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	tag, err := r.db.Exec(ctx, `UPDATE profiles SET avatar_url = $1, updated_at = now() WHERE id = $2`, avatarURL, id)
	if err != nil {
		return fmt.Errorf("error updating avatar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("profile not found")
	}
	return nil
}
