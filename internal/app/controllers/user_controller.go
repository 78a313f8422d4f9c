package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/app/services"
	"github.com/campusconnect/backend/internal/middleware"
)

// UserController handles profile and notification endpoints
type UserController struct {
	userService         *services.UserService
	notificationService *services.NotificationService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, notificationService *services.NotificationService) *UserController {
	return &UserController{userService: userService, notificationService: notificationService}
}

// GetUser returns a user's public profile
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=models.User} "The user"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user, Timestamp: time.Now()})
}

// UpdateProfile edits the session user's own profile
// @Summary Update own profile
// @Description Edits profile fields and preferences. Role and account state are not editable here.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.User} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profile data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	user, err := c.userService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user, Timestamp: time.Now()})
}

// ListNotifications returns the session user's notifications
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Notification} "Notifications, newest first"
// @Router /notifications [get]
func (c *UserController) ListNotifications(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	notifications, err := c.notificationService.List(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: notifications, Timestamp: time.Now()})
}

// UnreadNotificationCount returns the session user's unread badge count
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse} "Unread count"
// @Router /notifications/unread-count [get]
func (c *UserController) UnreadNotificationCount(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	count, err := c.notificationService.UnreadCount(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.UnreadCountResponse{Count: count},
		Timestamp: time.Now(),
	})
}

// MarkNotificationRead flags a notification as read
// @Summary Mark a notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Marked"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [post]
func (c *UserController) MarkNotificationRead(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	if err := c.notificationService.MarkRead(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Notification marked as read"},
		Timestamp: time.Now(),
	})
}

// MarkAllNotificationsRead flags every notification of the session user as read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Marked"
// @Router /notifications/read-all [post]
func (c *UserController) MarkAllNotificationsRead(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	if err := c.notificationService.MarkAllRead(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "All notifications marked as read"},
		Timestamp: time.Now(),
	})
}
