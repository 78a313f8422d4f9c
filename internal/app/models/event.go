package models

import "time"

// Event defines a campus event based on the 'events' table
type Event struct {
	ID                   int64         `json:"id" db:"id"`
	Name                 string        `json:"name" db:"name"`
	Description          *string       `json:"description,omitempty" db:"description"`
	Date                 time.Time     `json:"date" db:"date"`               // Calendar day of the event
	Time                 string        `json:"time" db:"time"`               // Start time, "14:00"
	EndTime              *string       `json:"endTime,omitempty" db:"end_time"`
	Duration             string        `json:"duration" db:"duration"`       // Human-readable, "2 hours"
	Venue                string        `json:"venue" db:"venue"`
	Category             EventCategory `json:"category" db:"category"`
	Department           string        `json:"department" db:"department"`
	Organizer            string        `json:"organizer" db:"organizer"`     // Denormalized organizer name
	OrganizerID          int64         `json:"organizerId" db:"organizer_id"`
	BannerImage          *string       `json:"bannerImage,omitempty" db:"banner_image"`
	MaxAttendees         *int          `json:"maxAttendees,omitempty" db:"max_attendees"`
	CurrentAttendees     int           `json:"currentAttendees" db:"current_attendees"`
	IsTicketed           bool          `json:"isTicketed" db:"is_ticketed"`
	TicketPrice          *float64      `json:"ticketPrice,omitempty" db:"ticket_price"`
	RegistrationDeadline *time.Time    `json:"registrationDeadline,omitempty" db:"registration_deadline"`
	Tags                 []string      `json:"tags,omitempty" db:"tags"`
	IsApproved           bool          `json:"isApproved" db:"is_approved"` // Auto-true for admin-created events
	IsActive             bool          `json:"isActive" db:"is_active"`
	Attendees            []int64       `json:"attendees" db:"attendees"`    // User ids that RSVP'd
	CreatedAt            time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time     `json:"updatedAt" db:"updated_at"`
}

// EventSortKey selects the ordering of event listings
type EventSortKey string

const (
	SortByName       EventSortKey = "name"
	SortByDate       EventSortKey = "date"
	SortByDepartment EventSortKey = "department"
	SortByCategory   EventSortKey = "category"
)

// IsAttending reports whether the given user has RSVP'd to the event
func (e *Event) IsAttending(userID int64) bool {
	for _, id := range e.Attendees {
		if id == userID {
			return true
		}
	}
	return false
}
