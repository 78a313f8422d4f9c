package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusconnect/backend/internal/app/models"
)

// StatsRepository computes admin dashboard aggregates. Counts are always
// read from the live tables so the dashboard reflects current state.
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// Collect gathers every dashboard counter in a single round trip
func (r *StatsRepository) Collect(ctx context.Context) (*models.AdminStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE is_active = TRUE),
			(SELECT COUNT(*) FROM books),
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(*) FROM transactions),
			(SELECT COUNT(*) FROM users WHERE is_active = FALSE AND suspension_reason IS NULL),
			(SELECT COUNT(*) FROM reports WHERE status = 'pending')
	`

	var stats models.AdminStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalUsers,
		&stats.ActiveUsers,
		&stats.TotalBooks,
		&stats.TotalEvents,
		&stats.TotalTransactions,
		&stats.PendingApprovals,
		&stats.ReportedContent,
	)
	if err != nil {
		return nil, fmt.Errorf("error collecting admin stats: %w", err)
	}
	return &stats, nil
}
