package dto

import "github.com/campusconnect/backend/internal/app/models"

// UpdateProfileRequest is the payload for self-service profile edits.
// Role, verification and active flags are never updatable here.
type UpdateProfileRequest struct {
	Name           *string             `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Department     *string             `json:"department,omitempty"`
	Year           *string             `json:"year,omitempty"`
	ProfilePicture *string             `json:"profilePicture,omitempty"`
	Phone          *string             `json:"phone,omitempty"`
	DormRoom       *string             `json:"dormRoom,omitempty"`
	Preferences    *models.Preferences `json:"preferences,omitempty"`
}

// SuspendUserRequest carries the reason for an admin suspension
type SuspendUserRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}

// CreateReportRequest flags a user, book or event for moderation.
// Exactly one reported id must be set.
type CreateReportRequest struct {
	ReportedUserID  *int64 `json:"reportedUserId,omitempty" binding:"omitempty,gt=0"`
	ReportedBookID  *int64 `json:"reportedBookId,omitempty" binding:"omitempty,gt=0"`
	ReportedEventID *int64 `json:"reportedEventId,omitempty" binding:"omitempty,gt=0"`
	Reason          string `json:"reason" binding:"required,min=3,max=255"`
	Description     string `json:"description" binding:"required,min=3,max=2000"`
}

// ResolveReportRequest closes a report
type ResolveReportRequest struct {
	Status string `json:"status" binding:"required,oneof=reviewed resolved dismissed"`
}

// UnreadCountResponse carries the notification badge count
type UnreadCountResponse struct {
	Count int `json:"count" example:"3"`
}

// CreateNotificationRequest is the payload for admin announcements
type CreateNotificationRequest struct {
	UserID    int64   `json:"userId" binding:"required,gt=0"`
	Type      string  `json:"type" binding:"required,oneof=message event transaction announcement security"`
	Title     string  `json:"title" binding:"required,min=1,max=255"`
	Content   string  `json:"content" binding:"required,min=1,max=2000"`
	ActionURL *string `json:"actionUrl,omitempty"`
}
