package dto

// CreateEventRequest is the payload for submitting an event.
// Organizer fields come from the session; approval is automatic only for admins.
type CreateEventRequest struct {
	Name                 string   `json:"name" binding:"required,min=1,max=255"`
	Description          *string  `json:"description,omitempty"`
	Date                 string   `json:"date" binding:"required" example:"2025-01-25"`
	Time                 string   `json:"time" binding:"required" example:"14:00"`
	EndTime              *string  `json:"endTime,omitempty" example:"16:00"`
	Duration             string   `json:"duration" binding:"required" example:"2 hours"`
	Venue                string   `json:"venue" binding:"required,max=255"`
	Category             string   `json:"category" binding:"required,oneof=Academic Social Sports Tech Cultural Other"`
	Department           string   `json:"department" binding:"required,max=255"`
	BannerImage          *string  `json:"bannerImage,omitempty"`
	MaxAttendees         *int     `json:"maxAttendees,omitempty" binding:"omitempty,gte=1"`
	IsTicketed           bool     `json:"isTicketed"`
	TicketPrice          *float64 `json:"ticketPrice,omitempty" binding:"omitempty,gte=0"`
	RegistrationDeadline *string  `json:"registrationDeadline,omitempty" example:"2025-01-20"`
	Tags                 []string `json:"tags,omitempty"`
}

// UpdateEventRequest is the payload for editing an event; nil fields are untouched
type UpdateEventRequest struct {
	Name                 *string  `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Description          *string  `json:"description,omitempty"`
	Date                 *string  `json:"date,omitempty"`
	Time                 *string  `json:"time,omitempty"`
	EndTime              *string  `json:"endTime,omitempty"`
	Duration             *string  `json:"duration,omitempty"`
	Venue                *string  `json:"venue,omitempty" binding:"omitempty,max=255"`
	Category             *string  `json:"category,omitempty" binding:"omitempty,oneof=Academic Social Sports Tech Cultural Other"`
	Department           *string  `json:"department,omitempty" binding:"omitempty,max=255"`
	BannerImage          *string  `json:"bannerImage,omitempty"`
	MaxAttendees         *int     `json:"maxAttendees,omitempty" binding:"omitempty,gte=1"`
	IsTicketed           *bool    `json:"isTicketed,omitempty"`
	TicketPrice          *float64 `json:"ticketPrice,omitempty" binding:"omitempty,gte=0"`
	RegistrationDeadline *string  `json:"registrationDeadline,omitempty"`
	Tags                 []string `json:"tags,omitempty"`
	IsActive             *bool    `json:"isActive,omitempty"`
}

// ListEventsQuery holds the query parameters accepted by event listing
type ListEventsQuery struct {
	Search string `form:"search"`
	SortBy string `form:"sortBy" binding:"omitempty,oneof=name date department category"`
}

// RSVPResponse reports the attendance state after a toggle
type RSVPResponse struct {
	EventID          int64 `json:"eventId"`
	Attending        bool  `json:"attending"`
	CurrentAttendees int   `json:"currentAttendees"`
}
