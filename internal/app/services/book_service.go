package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

// BookService handles marketplace listings
type BookService struct {
	bookRepo BookStore
	userRepo UserStore
	logger   zerolog.Logger
}

// NewBookService creates a new BookService
func NewBookService(bookRepo BookStore, userRepo UserStore, logger zerolog.Logger) *BookService {
	return &BookService{bookRepo: bookRepo, userRepo: userRepo, logger: logger}
}

// Add creates a listing owned by the session user. The owner id and the
// denormalized poster name always come from the authenticated account,
// never from the payload.
func (s *BookService) Add(ctx context.Context, userID int64, req *dto.CreateBookRequest) (*models.Book, error) {
	owner, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	book := &models.Book{
		Title:          req.Title,
		Author:         req.Author,
		ISBN:           req.ISBN,
		PostedBy:       owner.ID,
		PosterName:     owner.Name,
		Description:    req.Description,
		Condition:      models.BookCondition(req.Condition),
		Price:          req.Price,
		SuggestedPrice: req.SuggestedPrice,
		Type:           models.BookType(req.Type),
		Department:     req.Department,
		CourseCode:     req.CourseCode,
		Location:       req.Location,
		IsAvailable:    true,
	}

	id, err := s.bookRepo.Create(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("creating book: %w", err)
	}
	book.ID = id

	s.logger.Info().Int64("bookID", id).Int64("userID", userID).Msg("Book listed")
	return book, nil
}

// Get returns a single listing and counts the view. The counter moves
// first and the row is read afterwards, so the returned view count
// already includes this request.
func (s *BookService) Get(ctx context.Context, id int64) (*models.Book, error) {
	if err := s.bookRepo.IncrementViews(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrBookNotFound) {
			return nil, err
		}
		s.logger.Warn().Err(err).Int64("bookID", id).Msg("Failed to count view")
	}
	return s.bookRepo.GetByID(ctx, id)
}

// Update edits a listing. Only the owner or an admin may edit.
func (s *BookService) Update(ctx context.Context, userID int64, role models.RoleType, id int64, req *dto.UpdateBookRequest) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book.PostedBy != userID && role != models.RoleAdmin {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.ISBN != nil {
		book.ISBN = req.ISBN
	}
	if req.Description != nil {
		book.Description = req.Description
	}
	if req.Condition != nil {
		book.Condition = models.BookCondition(*req.Condition)
	}
	if req.Price != nil {
		book.Price = req.Price
	}
	if req.SuggestedPrice != nil {
		book.SuggestedPrice = req.SuggestedPrice
	}
	if req.Type != nil {
		book.Type = models.BookType(*req.Type)
	}
	if req.Department != nil {
		book.Department = req.Department
	}
	if req.CourseCode != nil {
		book.CourseCode = req.CourseCode
	}
	if req.Location != nil {
		book.Location = req.Location
	}
	if req.IsAvailable != nil {
		book.IsAvailable = *req.IsAvailable
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, fmt.Errorf("updating book: %w", err)
	}
	return book, nil
}

// Delete removes a listing. Only the owner or an admin may delete.
func (s *BookService) Delete(ctx context.Context, userID int64, role models.RoleType, id int64) error {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if book.PostedBy != userID && role != models.RoleAdmin {
		return apperrors.ErrPermissionDenied
	}
	return s.bookRepo.Delete(ctx, id)
}

// Search returns available listings matching the query and filters. The
// store may prefilter; the exact predicate is applied here so results are
// identical regardless of the backing implementation.
func (s *BookService) Search(ctx context.Context, q *dto.SearchBooksQuery) ([]*models.Book, error) {
	filters := models.BookFilters{
		Department: q.Department,
		PriceMin:   q.PriceMin,
		PriceMax:   q.PriceMax,
	}
	if q.Condition != nil {
		c := models.BookCondition(*q.Condition)
		filters.Condition = &c
	}
	if q.Type != nil {
		t := models.BookType(*q.Type)
		filters.Type = &t
	}

	books, err := s.bookRepo.Search(ctx, q.Query, filters)
	if err != nil {
		return nil, fmt.Errorf("searching books: %w", err)
	}
	return FilterBooks(books, q.Query, filters), nil
}
