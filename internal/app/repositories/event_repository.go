package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

// EventRepository handles campus event database operations
type EventRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var eventColumns = []string{
	"id", "name", "description", "date", "time", "end_time", "duration", "venue",
	"category", "department", "organizer", "organizer_id", "banner_image",
	"max_attendees", "current_attendees", "is_ticketed", "ticket_price",
	"registration_deadline", "tags", "is_approved", "is_active", "attendees",
	"created_at", "updated_at",
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var event models.Event
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.Description,
		&event.Date,
		&event.Time,
		&event.EndTime,
		&event.Duration,
		&event.Venue,
		&event.Category,
		&event.Department,
		&event.Organizer,
		&event.OrganizerID,
		&event.BannerImage,
		&event.MaxAttendees,
		&event.CurrentAttendees,
		&event.IsTicketed,
		&event.TicketPrice,
		&event.RegistrationDeadline,
		&event.Tags,
		&event.IsApproved,
		&event.IsActive,
		&event.Attendees,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if event.Attendees == nil {
		event.Attendees = []int64{}
	}
	return &event, nil
}

// Create inserts a new event and returns its id
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	query := `
		INSERT INTO events (
			name, description, date, time, end_time, duration, venue, category,
			department, organizer, organizer_id, banner_image, max_attendees,
			current_attendees, is_ticketed, ticket_price, registration_deadline,
			tags, is_approved, is_active, attendees
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		event.Name,
		event.Description,
		event.Date,
		event.Time,
		event.EndTime,
		event.Duration,
		event.Venue,
		event.Category,
		event.Department,
		event.Organizer,
		event.OrganizerID,
		event.BannerImage,
		event.MaxAttendees,
		event.CurrentAttendees,
		event.IsTicketed,
		event.TicketPrice,
		event.RegistrationDeadline,
		event.Tags,
		event.IsApproved,
		event.IsActive,
		event.Attendees,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating event: %w", err)
	}
	return event.ID, nil
}

// GetByID retrieves an event by id
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	sql, args, err := r.sb.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get event query: %w", err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}
	return event, nil
}

// Update persists all mutable fields of an event and bumps updated_at
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events SET
			name = $2, description = $3, date = $4, time = $5, end_time = $6,
			duration = $7, venue = $8, category = $9, department = $10,
			banner_image = $11, max_attendees = $12, is_ticketed = $13,
			ticket_price = $14, registration_deadline = $15, tags = $16,
			is_active = $17, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		event.ID,
		event.Name,
		event.Description,
		event.Date,
		event.Time,
		event.EndTime,
		event.Duration,
		event.Venue,
		event.Category,
		event.Department,
		event.BannerImage,
		event.MaxAttendees,
		event.IsTicketed,
		event.TicketPrice,
		event.RegistrationDeadline,
		event.Tags,
		event.IsActive,
	).Scan(&event.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrEventNotFound
		}
		return fmt.Errorf("error updating event: %w", err)
	}
	return nil
}

// Delete removes an event
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// List retrieves active events, optionally filtered by a substring match
// against name, department or venue. Ordering is applied by the caller.
func (r *EventRepository) List(ctx context.Context, search string) ([]*models.Event, error) {
	builder := r.sb.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"is_active": true})

	if q := strings.TrimSpace(search); q != "" {
		pattern := "%" + q + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"department": pattern},
			squirrel.ILike{"venue": pattern},
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build event list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}
	return events, nil
}

// UpdateAttendance persists the attendee list and counter after an RSVP toggle
func (r *EventRepository) UpdateAttendance(ctx context.Context, id int64, attendees []int64, count int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE events SET attendees = $2, current_attendees = $3, updated_at = NOW()
		WHERE id = $1`,
		id, attendees, count)
	if err != nil {
		return fmt.Errorf("error updating event attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// SetApproved flips the approval flag, admin only
func (r *EventRepository) SetApproved(ctx context.Context, id int64, approved bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE events SET is_approved = $2, updated_at = NOW() WHERE id = $1`,
		id, approved)
	if err != nil {
		return fmt.Errorf("error updating event approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}
