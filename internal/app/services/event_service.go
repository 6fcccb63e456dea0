package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/app/repositories"
	"github.com/familyhub/portal/internal/pkg/apperrors"
	"github.com/familyhub/portal/internal/pkg/helpers"
	"github.com/familyhub/portal/internal/pkg/metrics"
)

// EventService handles events and RSVPs
type EventService interface {
	List(ctx context.Context) ([]*models.Event, error)
	Create(ctx context.Context, viewer *models.Viewer, userID uuid.UUID, form *dto.EventForm) (*models.Event, error)
	RSVP(ctx context.Context, userID, eventID uuid.UUID, status models.RSVPStatus) error
}

type eventServiceImpl struct {
	eventRepo repositories.IEventRepository
	opts      Options
	logger    zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repositories.IEventRepository, opts Options, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		eventRepo: eventRepo,
		opts:      opts,
		logger:    logger,
	}
}

// List returns all events, soonest first, with their RSVP counts
func (s *eventServiceImpl) List(ctx context.Context) ([]*models.Event, error) {
	return s.eventRepo.ListWithRSVPCounts(ctx)
}

// Create stores a new event; only admins may create events
func (s *eventServiceImpl) Create(ctx context.Context, viewer *models.Viewer, userID uuid.UUID, form *dto.EventForm) (event *models.Event, err error) {
	defer func() { metrics.RecordForm("event", err) }()

	if !viewer.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only admins can create events")
	}

	date, err := helpers.ParseDateTimeLocal(form.EventDate, s.opts.location())
	if err != nil {
		return nil, apperrors.NewValidationError("Event date must be a valid date and time")
	}

	event = &models.Event{
		Title:       strings.TrimSpace(form.Title),
		Description: optional(form.Description),
		Location:    optional(form.Location),
		LocationURL: optional(form.LocationURL),
		EventDate:   date,
		CreatedBy:   userID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info().Str("eventID", event.ID.String()).Str("userID", userID.String()).Msg("Event created")
	return event, nil
}

// RSVP records one answer. Answers are never merged, so repeated RSVPs add rows.
func (s *eventServiceImpl) RSVP(ctx context.Context, userID, eventID uuid.UUID, status models.RSVPStatus) (err error) {
	defer func() { metrics.RecordForm("rsvp", err) }()

	if !status.Valid() {
		return apperrors.NewValidationError("Unknown RSVP status")
	}

	return s.eventRepo.CreateRSVP(ctx, &models.EventRSVP{
		EventID: eventID,
		UserID:  userID,
		Status:  status,
	})
}
