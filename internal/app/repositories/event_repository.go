package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/pkg/apperrors"
	"github.com/familyhub/portal/internal/pkg/dberrors"
)

// EventRepository handles database operations for events and RSVPs
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts an event and fills its id and timestamp
func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	sql, args, err := psql.Insert("events").
		Columns("title", "description", "location", "location_url", "event_date", "created_by").
		Values(e.Title, e.Description, e.Location, e.LocationURL, e.EventDate, e.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

// ListWithRSVPCounts returns all events in date order with their RSVP row count
func (r *EventRepository) ListWithRSVPCounts(ctx context.Context) ([]*models.Event, error) {
	sql, args, err := psql.Select(
		"e.id", "e.title", "e.description", "e.location", "e.location_url",
		"e.event_date", "e.created_by", "e.created_at", "COUNT(r.id)",
	).
		From("events e").
		LeftJoin("event_rsvps r ON r.event_id = e.id").
		GroupBy("e.id").
		OrderBy("e.event_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.LocationURL,
			&e.EventDate, &e.CreatedBy, &e.CreatedAt, &e.RSVPCount); err != nil {
			return nil, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}
	return events, nil
}

// CountFrom counts events dated at or after from
func (r *EventRepository) CountFrom(ctx context.Context, from time.Time) (int, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("events").Where(squirrel.GtOrEq{"event_date": from}))
}

// ListDates returns the date of every event
func (r *EventRepository) ListDates(ctx context.Context) ([]time.Time, error) {
	rows, err := r.db.Query(ctx, `SELECT event_date FROM events`)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("error scanning event date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// CreateRSVP stores one RSVP row. Earlier answers by the same member are kept.
func (r *EventRepository) CreateRSVP(ctx context.Context, rsvp *models.EventRSVP) error {
	sql, args, err := psql.Insert("event_rsvps").
		Columns("event_id", "user_id", "status").
		Values(rsvp.EventID, rsvp.UserID, rsvp.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&rsvp.ID, &rsvp.CreatedAt); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.NewResourceNotFoundError("event not found")
		}
		return fmt.Errorf("error creating rsvp: %w", err)
	}
	return nil
}
