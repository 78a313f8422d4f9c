package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

// NotificationService handles the user-facing notification feed
type NotificationService struct {
	notificationRepo NotificationStore
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo NotificationStore, logger zerolog.Logger) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo, logger: logger}
}

// List returns the session user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID int64) ([]*models.Notification, error) {
	return s.notificationRepo.ListForUser(ctx, userID)
}

// UnreadCount returns the number of unread notifications, for the badge
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}

// MarkRead flags a notification as read. Only its owner may do so.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id int64) error {
	n, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return apperrors.ErrPermissionDenied
	}
	return s.notificationRepo.MarkRead(ctx, id)
}

// MarkAllRead flags all of the session user's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Create inserts a notification on behalf of an admin, typically an
// announcement targeted at one user.
func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) (*models.Notification, error) {
	n := &models.Notification{
		UserID:    req.UserID,
		Type:      models.NotificationType(req.Type),
		Title:     req.Title,
		Content:   req.Content,
		ActionURL: req.ActionURL,
	}
	id, err := s.notificationRepo.Create(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}
	n.ID = id
	return n, nil
}
