package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

// ReportRepository handles moderation report database operations
type ReportRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var reportColumns = []string{
	"id", "reporter_id", "reported_user_id", "reported_book_id",
	"reported_event_id", "reason", "description", "status", "created_at",
	"resolved_at", "resolved_by",
}

func scanReport(row pgx.Row) (*models.Report, error) {
	var rep models.Report
	err := row.Scan(
		&rep.ID,
		&rep.ReporterID,
		&rep.ReportedUserID,
		&rep.ReportedBookID,
		&rep.ReportedEventID,
		&rep.Reason,
		&rep.Description,
		&rep.Status,
		&rep.CreatedAt,
		&rep.ResolvedAt,
		&rep.ResolvedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// Create inserts a new report with pending status
func (r *ReportRepository) Create(ctx context.Context, rep *models.Report) (int64, error) {
	query := `
		INSERT INTO reports (
			reporter_id, reported_user_id, reported_book_id, reported_event_id,
			reason, description, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		rep.ReporterID,
		rep.ReportedUserID,
		rep.ReportedBookID,
		rep.ReportedEventID,
		rep.Reason,
		rep.Description,
		rep.Status,
	).Scan(&rep.ID, &rep.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating report: %w", err)
	}
	return rep.ID, nil
}

// GetByID retrieves a report by id
func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	sql, args, err := r.sb.Select(reportColumns...).
		From("reports").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get report query: %w", err)
	}

	rep, err := scanReport(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, fmt.Errorf("error retrieving report: %w", err)
	}
	return rep, nil
}

// List retrieves reports, optionally filtered by status, newest first
func (r *ReportRepository) List(ctx context.Context, status *models.ReportStatus) ([]*models.Report, error) {
	builder := r.sb.Select(reportColumns...).
		From("reports").
		OrderBy("created_at DESC")
	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build report list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning report row: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}
	return reports, nil
}

// Resolve closes a report with the given status and resolver
func (r *ReportRepository) Resolve(ctx context.Context, id int64, status models.ReportStatus, resolvedBy int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reports SET status = $2, resolved_at = $3, resolved_by = $4
		WHERE id = $1`,
		id, status, time.Now(), resolvedBy)
	if err != nil {
		return fmt.Errorf("error resolving report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrReportNotFound
	}
	return nil
}

// CountPending returns the number of reports awaiting review
func (r *ReportRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reports WHERE status = 'pending'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting pending reports: %w", err)
	}
	return count, nil
}
