package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

// AdminService handles moderation: account approval, suspension, reports
// and the dashboard aggregates.
type AdminService struct {
	userRepo         UserStore
	tokenRepo        TokenStore
	reportRepo       ReportStore
	statsRepo        StatsStore
	notificationRepo NotificationStore
	logger           zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	userRepo UserStore,
	tokenRepo TokenStore,
	reportRepo ReportStore,
	statsRepo StatsStore,
	notificationRepo NotificationStore,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		userRepo:         userRepo,
		tokenRepo:        tokenRepo,
		reportRepo:       reportRepo,
		statsRepo:        statsRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// PendingUsers lists accounts waiting for approval, oldest first
func (s *AdminService) PendingUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.ListPending(ctx)
}

// ListUsers returns every account
func (s *AdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

// ApproveUser activates a pending account and tells its owner
func (s *AdminService) ApproveUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsActive {
		return user, nil
	}

	if err := s.userRepo.SetActivation(ctx, userID, true, true, nil); err != nil {
		return nil, fmt.Errorf("activating user: %w", err)
	}
	user.IsActive = true
	user.IsVerified = true
	user.SuspensionReason = nil

	s.notify(ctx, userID, models.NotificationAnnouncement,
		"Account approved", "Your account has been approved. Welcome aboard!")

	s.logger.Info().Int64("userID", userID).Msg("User approved")
	return user, nil
}

// SuspendUser deactivates an account with a reason and revokes every
// refresh token it holds, so existing sessions die at the next refresh.
func (s *AdminService) SuspendUser(ctx context.Context, adminID, userID int64, req *dto.SuspendUserRequest) (*models.User, error) {
	if adminID == userID {
		return nil, apperrors.NewValidationError("cannot suspend your own account")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleAdmin {
		return nil, apperrors.ErrPermissionDenied
	}

	reason := req.Reason
	if err := s.userRepo.SetActivation(ctx, userID, false, user.IsVerified, &reason); err != nil {
		return nil, fmt.Errorf("suspending user: %w", err)
	}
	if err := s.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke tokens on suspension")
	}

	user.IsActive = false
	user.SuspensionReason = &reason

	s.logger.Info().Int64("userID", userID).Int64("adminID", adminID).Msg("User suspended")
	return user, nil
}

// Stats recomputes the dashboard aggregates from the live tables on
// every call. The numbers are allowed to be expensive; they are never
// allowed to be stale.
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	return s.statsRepo.Collect(ctx)
}

// CreateReport files a moderation report from any authenticated user.
// Exactly one reported id must be set.
func (s *AdminService) CreateReport(ctx context.Context, reporterID int64, req *dto.CreateReportRequest) (*models.Report, error) {
	set := 0
	for _, id := range []*int64{req.ReportedUserID, req.ReportedBookID, req.ReportedEventID} {
		if id != nil {
			set++
		}
	}
	if set != 1 {
		return nil, apperrors.NewValidationError("exactly one of reportedUserId, reportedBookId, reportedEventId must be set")
	}

	report := &models.Report{
		ReporterID:      reporterID,
		ReportedUserID:  req.ReportedUserID,
		ReportedBookID:  req.ReportedBookID,
		ReportedEventID: req.ReportedEventID,
		Reason:          req.Reason,
		Description:     req.Description,
		Status:          models.ReportPending,
	}
	id, err := s.reportRepo.Create(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}
	report.ID = id
	return report, nil
}

// ListReports returns reports, optionally narrowed to one status
func (s *AdminService) ListReports(ctx context.Context, status *models.ReportStatus) ([]*models.Report, error) {
	return s.reportRepo.List(ctx, status)
}

// ResolveReport closes a report with the given outcome
func (s *AdminService) ResolveReport(ctx context.Context, adminID, reportID int64, req *dto.ResolveReportRequest) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	status := models.ReportStatus(req.Status)
	if err := s.reportRepo.Resolve(ctx, reportID, status, adminID); err != nil {
		return nil, fmt.Errorf("resolving report: %w", err)
	}
	report.Status = status
	report.ResolvedBy = &adminID
	return report, nil
}

func (s *AdminService) notify(ctx context.Context, userID int64, kind models.NotificationType, title, content string) {
	n := &models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Content: content,
	}
	if _, err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to create notification")
	}
}
