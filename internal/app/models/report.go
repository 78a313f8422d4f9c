package models

import "time"

// Report defines a moderation report based on the 'reports' table.
// Exactly one of the reported ids should be set.
type Report struct {
	ID              int64        `json:"id" db:"id"`
	ReporterID      int64        `json:"reporterId" db:"reporter_id"`
	ReportedUserID  *int64       `json:"reportedUserId,omitempty" db:"reported_user_id"`
	ReportedBookID  *int64       `json:"reportedBookId,omitempty" db:"reported_book_id"`
	ReportedEventID *int64       `json:"reportedEventId,omitempty" db:"reported_event_id"`
	Reason          string       `json:"reason" db:"reason"`
	Description     string       `json:"description" db:"description"`
	Status          ReportStatus `json:"status" db:"status"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
	ResolvedAt      *time.Time   `json:"resolvedAt,omitempty" db:"resolved_at"`
	ResolvedBy      *int64       `json:"resolvedBy,omitempty" db:"resolved_by"`
}

// AdminStats aggregates moderation counters shown on the admin panel.
// Always recomputed from the live tables, never cached.
type AdminStats struct {
	TotalUsers        int64 `json:"totalUsers"`
	ActiveUsers       int64 `json:"activeUsers"`
	TotalBooks        int64 `json:"totalBooks"`
	TotalEvents       int64 `json:"totalEvents"`
	TotalTransactions int64 `json:"totalTransactions"`
	PendingApprovals  int64 `json:"pendingApprovals"`
	ReportedContent   int64 `json:"reportedContent"`
}
