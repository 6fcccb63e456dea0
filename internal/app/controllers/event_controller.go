package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/app/services"
	"github.com/familyhub/portal/internal/middleware"
	"github.com/familyhub/portal/internal/pkg/notify"
)

const eventsPath = "/events"

// EventController handles family events and RSVPs
type EventController struct {
	eventService services.EventService
	logger       zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService, logger zerolog.Logger) *EventController {
	return &EventController{
		eventService: eventService,
		logger:       logger,
	}
}

// Index renders all events, soonest first
func (c *EventController) Index(ctx *gin.Context) {
	events, err := c.eventService.List(ctx.Request.Context())
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to load events")
	}

	renderPage(ctx, http.StatusOK, pageEvents, "Events", eventsPath, gin.H{
		"Events": events,
	})
}

// Create adds an event. Admin only.
func (c *EventController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var form dto.EventForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid event form")
		notify.Error(ctx, middleware.ValidationMessage(err))
		redirect(ctx, eventsPath)
		return
	}

	event, err := c.eventService.Create(ctx.Request.Context(), middleware.GetViewer(ctx), userID, &form)
	if err != nil {
		c.logger.Error().Err(err).Str("userID", userID.String()).Msg("Failed to create event")
		notify.Error(ctx, middleware.PageErrorMessage(err, "Error creating event"))
		redirect(ctx, eventsPath)
		return
	}

	c.logger.Info().Str("eventID", event.ID.String()).Str("title", event.Title).Msg("Event created")
	notify.Success(ctx, "Event created successfully!")
	redirect(ctx, eventsPath)
}

// RSVP records the caller's answer for an event
func (c *EventController) RSVP(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	eventID, ok := paramUUID(ctx, "id")
	if !ok {
		return
	}

	var form dto.RSVPForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid RSVP form")
		notify.Error(ctx, "Error updating RSVP")
		redirect(ctx, eventsPath)
		return
	}

	status := models.RSVPStatus(form.Status)
	if err := c.eventService.RSVP(ctx.Request.Context(), userID, eventID, status); err != nil {
		c.logger.Error().Err(err).Str("eventID", eventID.String()).Msg("Failed to record RSVP")
		notify.Error(ctx, "Error updating RSVP")
		redirect(ctx, eventsPath)
		return
	}

	notify.Success(ctx, "RSVP "+form.Status+"!")
	redirect(ctx, eventsPath)
}
