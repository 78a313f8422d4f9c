package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/app/services"
	"github.com/campusconnect/backend/internal/middleware"
)

// TransactionController handles marketplace transactions
type TransactionController struct {
	transactionService *services.TransactionService
}

// NewTransactionController creates a new TransactionController
func NewTransactionController(transactionService *services.TransactionService) *TransactionController {
	return &TransactionController{transactionService: transactionService}
}

// List returns the session user's transactions
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Transaction} "Transactions"
// @Router /transactions [get]
func (c *TransactionController) List(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	transactions, err := c.transactionService.List(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: transactions, Timestamp: time.Now()})
}

// Get returns one transaction
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.APIResponse{data=models.Transaction} "The transaction"
// @Failure 403 {object} dto.ErrorResponse "Not a party to the transaction"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Router /transactions/{id} [get]
func (c *TransactionController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	t, err := c.transactionService.Get(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: t, Timestamp: time.Now()})
}

// Create starts a transaction for a listing
// @Summary Start a transaction
// @Description The buyer is the authenticated user; the seller is the listing owner.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTransactionRequest true "Transaction information"
// @Success 201 {object} dto.APIResponse{data=models.Transaction} "Transaction created"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 409 {object} dto.ErrorResponse "Book not available"
// @Router /transactions [post]
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid transaction data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	t, err := c.transactionService.Create(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: t, Timestamp: time.Now()})
}

// Update advances or annotates a transaction
// @Summary Update a transaction
// @Description Status moves follow pending -> confirmed -> completed, with cancellation allowed until completion.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Param request body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Transaction} "Updated transaction"
// @Failure 403 {object} dto.ErrorResponse "Not a party to the transaction"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Router /transactions/{id} [put]
func (c *TransactionController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid transaction data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	t, err := c.transactionService.Update(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: t, Timestamp: time.Now()})
}
