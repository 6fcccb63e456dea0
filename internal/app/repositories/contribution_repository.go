package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/familyhub/portal/internal/app/models"
)

var contributionColumns = []string{
	"id", "user_id", "amount", "contribution_type", "payment_method", "notes", "status", "created_at",
}

// ContributionRepository handles database operations for contributions
type ContributionRepository struct {
	db *pgxpool.Pool
}

// NewContributionRepository creates a new ContributionRepository
func NewContributionRepository(db *pgxpool.Pool) *ContributionRepository {
	return &ContributionRepository{db: db}
}

// Create inserts a contribution and fills its id and timestamp
func (r *ContributionRepository) Create(ctx context.Context, c *models.Contribution) error {
	sql, args, err := psql.Insert("contributions").
		Columns("user_id", "amount", "contribution_type", "payment_method", "notes", "status").
		Values(c.UserID, c.Amount, c.ContributionType, c.PaymentMethod, c.Notes, c.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("error creating contribution: %w", err)
	}
	return nil
}

func (r *ContributionRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Contribution, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var contributions []*models.Contribution
	for rows.Next() {
		var c models.Contribution
		if err := rows.Scan(&c.ID, &c.UserID, &c.Amount, &c.ContributionType, &c.PaymentMethod, &c.Notes, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning contribution row: %w", err)
		}
		contributions = append(contributions, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contribution rows: %w", err)
	}
	return contributions, nil
}

// ListByUser returns a member's contributions, newest first
func (r *ContributionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Contribution, error) {
	return r.list(ctx, psql.Select(contributionColumns...).
		From("contributions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC"))
}

// ListAll returns every contribution, newest first
func (r *ContributionRepository) ListAll(ctx context.Context) ([]*models.Contribution, error) {
	return r.list(ctx, psql.Select(contributionColumns...).From("contributions").OrderBy("created_at DESC"))
}
