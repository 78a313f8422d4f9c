package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/app/services"
	"github.com/campusconnect/backend/internal/middleware"
)

// AdminController handles moderation endpoints
type AdminController struct {
	adminService        *services.AdminService
	notificationService *services.NotificationService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, notificationService *services.NotificationService) *AdminController {
	return &AdminController{adminService: adminService, notificationService: notificationService}
}

// Stats returns the dashboard aggregates
// @Summary Admin dashboard stats
// @Description Recomputed from the live tables on every call; never cached
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.AdminStats} "Current aggregates"
// @Router /admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	stats, err := c.adminService.Stats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: stats, Timestamp: time.Now()})
}

// ListUsers returns every account
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.User} "All accounts"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.adminService.ListUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: users, Timestamp: time.Now()})
}

// PendingUsers lists accounts waiting for approval
// @Summary List pending accounts
// @Description Accounts that registered but were not yet approved, oldest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Pending accounts"
// @Router /admin/users/pending [get]
func (c *AdminController) PendingUsers(ctx *gin.Context) {
	users, err := c.adminService.PendingUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: users, Timestamp: time.Now()})
}

// ApproveUser activates a pending account
// @Summary Approve a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=models.User} "Activated account"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/approve [post]
func (c *AdminController) ApproveUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	user, err := c.adminService.ApproveUser(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user, Timestamp: time.Now()})
}

// SuspendUser deactivates an account
// @Summary Suspend a user
// @Description Deactivates the account, records the reason and revokes its refresh tokens
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.SuspendUserRequest true "Suspension reason"
// @Success 200 {object} dto.APIResponse{data=models.User} "Suspended account"
// @Failure 403 {object} dto.ErrorResponse "Cannot suspend an admin"
// @Router /admin/users/{id}/suspend [post]
func (c *AdminController) SuspendUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.SuspendUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid suspension data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	adminID, _ := middleware.CurrentUserID(ctx)
	user, err := c.adminService.SuspendUser(ctx, adminID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user, Timestamp: time.Now()})
}

// CreateReport files a moderation report
// @Summary Report content
// @Description Flags a user, book or event. Open to any authenticated user.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReportRequest true "Report details"
// @Success 201 {object} dto.APIResponse{data=models.Report} "Report filed"
// @Failure 400 {object} dto.ErrorResponse "Invalid report"
// @Router /reports [post]
func (c *AdminController) CreateReport(ctx *gin.Context) {
	var req dto.CreateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid report data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	report, err := c.adminService.CreateReport(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: report, Timestamp: time.Now()})
}

// ListReports returns moderation reports
// @Summary List reports
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Narrow to one status: pending, reviewed, resolved or dismissed"
// @Success 200 {object} dto.APIResponse{data=[]models.Report} "Reports"
// @Router /admin/reports [get]
func (c *AdminController) ListReports(ctx *gin.Context) {
	var status *models.ReportStatus
	if s := ctx.Query("status"); s != "" {
		st := models.ReportStatus(s)
		status = &st
	}

	reports, err := c.adminService.ListReports(ctx, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: reports, Timestamp: time.Now()})
}

// ResolveReport closes a report
// @Summary Resolve a report
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param request body dto.ResolveReportRequest true "Outcome"
// @Success 200 {object} dto.APIResponse{data=models.Report} "Closed report"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Router /admin/reports/{id}/resolve [post]
func (c *AdminController) ResolveReport(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ResolveReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid resolution data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	adminID, _ := middleware.CurrentUserID(ctx)
	report, err := c.adminService.ResolveReport(ctx, adminID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: report, Timestamp: time.Now()})
}

// CreateNotification sends a targeted announcement
// @Summary Send a notification
// @Description Admin-only direct notification to one user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateNotificationRequest true "Notification"
// @Success 201 {object} dto.APIResponse{data=models.Notification} "Notification created"
// @Router /admin/notifications [post]
func (c *AdminController) CreateNotification(ctx *gin.Context) {
	var req dto.CreateNotificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid notification data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	notification, err := c.notificationService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: notification, Timestamp: time.Now()})
}
