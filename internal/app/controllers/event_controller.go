package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/app/services"
	"github.com/campusconnect/backend/internal/middleware"
)

// EventController handles campus event operations
type EventController struct {
	eventService *services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// List returns events matching the search, sorted by the requested key
// @Summary List events
// @Description Returns active approved events. Admins also see pending submissions.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param search query string false "Free-text search over name, department and venue"
// @Param sortBy query string false "Sort key: name, date, department or category" default(date)
// @Success 200 {object} dto.APIResponse{data=[]models.Event} "Matching events"
// @Router /events [get]
func (c *EventController) List(ctx *gin.Context) {
	var q dto.ListEventsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid listing parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	events, err := c.eventService.List(ctx, middleware.CurrentRole(ctx), &q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: events, Timestamp: time.Now()})
}

// Get returns one event
// @Summary Get an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event} "The event"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	event, err := c.eventService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: event, Timestamp: time.Now()})
}

// Create submits an event
// @Summary Submit an event
// @Description Creates an event. Admin submissions are approved immediately; everyone else's wait for moderation.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event information"
// @Success 201 {object} dto.APIResponse{data=models.Event} "Event submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /events [post]
func (c *EventController) Create(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid event data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	event, err := c.eventService.Add(ctx, userID, middleware.CurrentRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: event, Timestamp: time.Now()})
}

// Update edits an event
// @Summary Update an event
// @Description Edits an event. Only the organizer or an admin may edit.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Updated event"
// @Failure 403 {object} dto.ErrorResponse "Not the organizer"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [put]
func (c *EventController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid event data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	event, err := c.eventService.Update(ctx, userID, middleware.CurrentRole(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: event, Timestamp: time.Now()})
}

// Delete removes an event
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Event removed"
// @Failure 403 {object} dto.ErrorResponse "Not the organizer"
// @Router /events/{id} [delete]
func (c *EventController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	if err := c.eventService.Delete(ctx, userID, middleware.CurrentRole(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Event deleted"},
		Timestamp: time.Now(),
	})
}

// RSVP toggles the session user's attendance
// @Summary Toggle RSVP
// @Description Flips the caller's attendance. Calling twice restores the original state.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.RSVPResponse} "New attendance state"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Event is full"
// @Router /events/{id}/rsvp [post]
func (c *EventController) RSVP(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	result, err := c.eventService.RSVP(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result, Timestamp: time.Now()})
}

// Approve marks a submitted event as approved
// @Summary Approve an event
// @Description Admin only. Makes a pending submission visible to everyone.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Approved event"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /admin/events/{id}/approve [post]
func (c *EventController) Approve(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	event, err := c.eventService.Approve(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: event, Timestamp: time.Now()})
}
