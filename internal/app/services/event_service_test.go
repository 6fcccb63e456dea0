package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/pkg/apperrors"
)

func TestRepeatedRSVPsAccumulate(t *testing.T) {
	repo := &fakeEvents{}
	svc := NewEventService(repo, testOptions(), zerolog.Nop())
	event := &models.Event{Title: "Reunion", EventDate: fixedNow.Add(48 * time.Hour)}
	require.NoError(t, repo.Create(context.Background(), event))

	userID := uuid.New()
	for _, status := range []models.RSVPStatus{models.RSVPAttending, models.RSVPMaybe, models.RSVPAttending} {
		require.NoError(t, svc.RSVP(context.Background(), userID, event.ID, status))
	}

	events, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 3, events[0].RSVPCount)
}

func TestRSVPValidation(t *testing.T) {
	repo := &fakeEvents{}
	svc := NewEventService(repo, testOptions(), zerolog.Nop())

	err := svc.RSVP(context.Background(), uuid.New(), uuid.New(), "perhaps")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = svc.RSVP(context.Background(), uuid.New(), uuid.New(), models.RSVPDeclined)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCreateEvent(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*3600)
	opts := testOptions()
	opts.Location = nairobi

	repo := &fakeEvents{}
	svc := NewEventService(repo, opts, zerolog.Nop())
	form := &dto.EventForm{
		Title:       " Family reunion ",
		Location:    "Nyeri",
		LocationURL: "https://maps.example.com/nyeri",
		EventDate:   "2026-12-24T18:30",
	}

	_, err := svc.Create(context.Background(), &models.Viewer{Role: models.RoleMember}, uuid.New(), form)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Empty(t, repo.events)

	admin := uuid.New()
	event, err := svc.Create(context.Background(), &models.Viewer{Role: models.RoleAdmin}, admin, form)
	require.NoError(t, err)
	assert.Equal(t, "Family reunion", event.Title)
	assert.Nil(t, event.Description)
	assert.Equal(t, time.Date(2026, time.December, 24, 15, 30, 0, 0, time.UTC), event.EventDate.UTC())
	assert.Equal(t, admin, event.CreatedBy)

	form.EventDate = "next week"
	_, err = svc.Create(context.Background(), &models.Viewer{Role: models.RoleAdmin}, admin, form)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
