package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/app/services"
	"github.com/campusconnect/backend/internal/middleware"
)

// BookController handles marketplace listing operations
type BookController struct {
	bookService *services.BookService
}

// NewBookController creates a new BookController
func NewBookController(bookService *services.BookService) *BookController {
	return &BookController{bookService: bookService}
}

// Search lists available books matching the query and filters
// @Summary Search books
// @Description Returns available listings matching a free-text query and optional filters
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param q query string false "Free-text query over title, author, ISBN and course code"
// @Param department query string false "Department filter"
// @Param condition query string false "Condition filter"
// @Param type query string false "Listing type filter"
// @Param priceMin query number false "Minimum price"
// @Param priceMax query number false "Maximum price"
// @Success 200 {object} dto.APIResponse{data=[]models.Book} "Matching listings"
// @Router /books [get]
func (c *BookController) Search(ctx *gin.Context) {
	var q dto.SearchBooksQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid search parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	books, err := c.bookService.Search(ctx, &q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: books, Timestamp: time.Now()})
}

// Get returns one listing
// @Summary Get a book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} dto.APIResponse{data=models.Book} "The listing"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Router /books/{id} [get]
func (c *BookController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	book, err := c.bookService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: book, Timestamp: time.Now()})
}

// Create posts a listing owned by the session user
// @Summary Post a book
// @Description Creates a listing. The owner is always the authenticated user.
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBookRequest true "Listing information"
// @Success 201 {object} dto.APIResponse{data=models.Book} "Listing created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /books [post]
func (c *BookController) Create(ctx *gin.Context) {
	var req dto.CreateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid book data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	book, err := c.bookService.Add(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: book, Timestamp: time.Now()})
}

// Update edits a listing
// @Summary Update a book
// @Description Edits a listing. Only the owner or an admin may edit.
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param request body dto.UpdateBookRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Book} "Updated listing"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Router /books/{id} [put]
func (c *BookController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid book data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	book, err := c.bookService.Update(ctx, userID, middleware.CurrentRole(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: book, Timestamp: time.Now()})
}

// Delete removes a listing
// @Summary Delete a book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Listing removed"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Router /books/{id} [delete]
func (c *BookController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	if err := c.bookService.Delete(ctx, userID, middleware.CurrentRole(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Book deleted"},
		Timestamp: time.Now(),
	})
}

// pathID parses a positive int64 path parameter, writing the error
// response itself when the value is malformed.
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
