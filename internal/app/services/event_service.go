package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

const eventDateLayout = "2006-01-02"

// EventService handles campus events and attendance
type EventService struct {
	eventRepo        EventStore
	userRepo         UserStore
	notificationRepo NotificationStore
	logger           zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo EventStore, userRepo UserStore, notificationRepo NotificationStore, logger zerolog.Logger) *EventService {
	return &EventService{
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Add submits an event. Events created by admins are approved on the
// spot; everyone else's wait for moderation.
func (s *EventService) Add(ctx context.Context, userID int64, role models.RoleType, req *dto.CreateEventRequest) (*models.Event, error) {
	organizer, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(eventDateLayout, req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("date must be formatted as YYYY-MM-DD")
	}

	event := &models.Event{
		Name:         req.Name,
		Description:  req.Description,
		Date:         date,
		Time:         req.Time,
		EndTime:      req.EndTime,
		Duration:     req.Duration,
		Venue:        req.Venue,
		Category:     models.EventCategory(req.Category),
		Department:   req.Department,
		Organizer:    organizer.Name,
		OrganizerID:  organizer.ID,
		BannerImage:  req.BannerImage,
		MaxAttendees: req.MaxAttendees,
		IsTicketed:   req.IsTicketed,
		TicketPrice:  req.TicketPrice,
		Tags:         req.Tags,
		IsApproved:   role == models.RoleAdmin,
		IsActive:     true,
		Attendees:    []int64{},
	}
	if req.RegistrationDeadline != nil {
		deadline, err := time.Parse(eventDateLayout, *req.RegistrationDeadline)
		if err != nil {
			return nil, apperrors.NewValidationError("registrationDeadline must be formatted as YYYY-MM-DD")
		}
		event.RegistrationDeadline = &deadline
	}

	id, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}
	event.ID = id

	s.logger.Info().Int64("eventID", id).Int64("userID", userID).Bool("approved", event.IsApproved).Msg("Event submitted")
	return event, nil
}

// Get returns a single event
func (s *EventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// Update edits an event. Only the organizer or an admin may edit.
func (s *EventService) Update(ctx context.Context, userID int64, role models.RoleType, id int64, req *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != userID && role != models.RoleAdmin {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.Date != nil {
		date, err := time.Parse(eventDateLayout, *req.Date)
		if err != nil {
			return nil, apperrors.NewValidationError("date must be formatted as YYYY-MM-DD")
		}
		event.Date = date
	}
	if req.Time != nil {
		event.Time = *req.Time
	}
	if req.EndTime != nil {
		event.EndTime = req.EndTime
	}
	if req.Duration != nil {
		event.Duration = *req.Duration
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
	}
	if req.Category != nil {
		event.Category = models.EventCategory(*req.Category)
	}
	if req.Department != nil {
		event.Department = *req.Department
	}
	if req.BannerImage != nil {
		event.BannerImage = req.BannerImage
	}
	if req.MaxAttendees != nil {
		event.MaxAttendees = req.MaxAttendees
	}
	if req.IsTicketed != nil {
		event.IsTicketed = *req.IsTicketed
	}
	if req.TicketPrice != nil {
		event.TicketPrice = req.TicketPrice
	}
	if req.RegistrationDeadline != nil {
		deadline, err := time.Parse(eventDateLayout, *req.RegistrationDeadline)
		if err != nil {
			return nil, apperrors.NewValidationError("registrationDeadline must be formatted as YYYY-MM-DD")
		}
		event.RegistrationDeadline = &deadline
	}
	if req.Tags != nil {
		event.Tags = req.Tags
	}
	if req.IsActive != nil {
		if role != models.RoleAdmin {
			return nil, apperrors.ErrPermissionDenied
		}
		event.IsActive = *req.IsActive
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("updating event: %w", err)
	}
	return event, nil
}

// Delete removes an event. Only the organizer or an admin may delete.
func (s *EventService) Delete(ctx context.Context, userID int64, role models.RoleType, id int64) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.OrganizerID != userID && role != models.RoleAdmin {
		return apperrors.ErrPermissionDenied
	}
	return s.eventRepo.Delete(ctx, id)
}

// List returns active events matching the search, sorted by the given
// key. Non-admins only see approved events; admins also see pending ones
// so the moderation queue stays visible in the main listing.
func (s *EventService) List(ctx context.Context, role models.RoleType, q *dto.ListEventsQuery) ([]*models.Event, error) {
	events, err := s.eventRepo.List(ctx, q.Search)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	events = FilterEvents(events, q.Search)
	if role != models.RoleAdmin {
		visible := make([]*models.Event, 0, len(events))
		for _, e := range events {
			if e.IsApproved {
				visible = append(visible, e)
			}
		}
		events = visible
	}

	sortBy := models.EventSortKey(q.SortBy)
	if sortBy == "" {
		sortBy = models.SortByDate
	}
	SortEvents(events, sortBy)
	return events, nil
}

// RSVP toggles the session user's attendance on an event and persists
// the new attendee list. Toggling twice restores the original state. Full
// events reject new attendees but always allow leaving.
func (s *EventService) RSVP(ctx context.Context, userID, eventID int64) (*dto.RSVPResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsApproved || !event.IsActive {
		return nil, apperrors.ErrEventNotApproved
	}

	attendees, attending := ToggleAttendance(event.Attendees, userID)
	if attending && event.MaxAttendees != nil && len(attendees) > *event.MaxAttendees {
		return nil, apperrors.ErrEventFull
	}

	if err := s.eventRepo.UpdateAttendance(ctx, eventID, attendees, len(attendees)); err != nil {
		return nil, fmt.Errorf("updating attendance: %w", err)
	}

	return &dto.RSVPResponse{
		EventID:          eventID,
		Attending:        attending,
		CurrentAttendees: len(attendees),
	}, nil
}

// Approve marks a submitted event as approved and notifies the
// organizer. Admin-only; the route guard enforces the role, this just
// does the work.
func (s *EventService) Approve(ctx context.Context, eventID int64) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsApproved {
		return event, nil
	}

	if err := s.eventRepo.SetApproved(ctx, eventID, true); err != nil {
		return nil, fmt.Errorf("approving event: %w", err)
	}
	event.IsApproved = true

	s.notify(ctx, event.OrganizerID, models.NotificationEvent,
		"Event approved", fmt.Sprintf("Your event %q is now visible to everyone.", event.Name))
	return event, nil
}

func (s *EventService) notify(ctx context.Context, userID int64, kind models.NotificationType, title, message string) {
	n := &models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Content: message,
	}
	if _, err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to create notification")
	}
}
