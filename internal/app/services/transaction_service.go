package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

// TransactionService handles marketplace transactions
type TransactionService struct {
	transactionRepo  TransactionStore
	bookRepo         BookStore
	userRepo         UserStore
	notificationRepo NotificationStore
	logger           zerolog.Logger
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	transactionRepo TransactionStore,
	bookRepo BookStore,
	userRepo UserStore,
	notificationRepo NotificationStore,
	logger zerolog.Logger,
) *TransactionService {
	return &TransactionService{
		transactionRepo:  transactionRepo,
		bookRepo:         bookRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Create starts a transaction for a listing. The buyer is the session
// user and the seller is the listing owner; neither comes from the payload.
func (s *TransactionService) Create(ctx context.Context, userID int64, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	book, err := s.bookRepo.GetByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if !book.IsAvailable {
		return nil, apperrors.ErrBookNotAvailable
	}
	if book.PostedBy == userID {
		return nil, apperrors.NewValidationError("cannot start a transaction on your own listing")
	}

	t := &models.Transaction{
		BookID:       book.ID,
		BuyerID:      userID,
		SellerID:     book.PostedBy,
		Amount:       req.Amount,
		Type:         models.TransactionType(req.Type),
		Status:       models.StatusPending,
		MeetingPoint: req.MeetingPoint,
	}
	if t.Amount == nil {
		t.Amount = book.Price
	}
	if req.MeetingTime != nil {
		mt, err := time.Parse(time.RFC3339, *req.MeetingTime)
		if err != nil {
			return nil, apperrors.NewValidationError("meetingTime must be an RFC 3339 timestamp")
		}
		t.MeetingTime = &mt
	}

	id, err := s.transactionRepo.Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}
	t.ID = id

	s.notify(ctx, t.SellerID, "New purchase request",
		fmt.Sprintf("Someone wants to buy %q.", book.Title))

	s.logger.Info().Int64("transactionID", id).Int64("buyerID", userID).Int64("sellerID", t.SellerID).Msg("Transaction created")
	return t, nil
}

// Get returns a transaction visible to its buyer or seller only
func (s *TransactionService) Get(ctx context.Context, userID, id int64) (*models.Transaction, error) {
	t, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.BuyerID != userID && t.SellerID != userID {
		return nil, apperrors.ErrPermissionDenied
	}
	return t, nil
}

// List returns every transaction the session user takes part in
func (s *TransactionService) List(ctx context.Context, userID int64) ([]*models.Transaction, error) {
	return s.transactionRepo.ListForUser(ctx, userID)
}

// Update advances or annotates a transaction. Only the buyer or seller
// may act, status moves must follow pending -> confirmed -> completed
// with cancellation allowed until completion, and completing a
// transaction closes the listing and folds the ratings into both
// accounts.
func (s *TransactionService) Update(ctx context.Context, userID, id int64, req *dto.UpdateTransactionRequest) (*models.Transaction, error) {
	t, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.BuyerID != userID && t.SellerID != userID {
		return nil, apperrors.ErrPermissionDenied
	}

	completed := false
	if req.Status != nil {
		next := models.TransactionStatus(*req.Status)
		if !t.CanTransitionTo(next) {
			return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidStatusChange, t.Status, next)
		}
		t.Status = next
		if next == models.StatusCompleted {
			now := time.Now()
			t.CompletedAt = &now
			completed = true
		}
	}
	if req.MeetingPoint != nil {
		t.MeetingPoint = req.MeetingPoint
	}
	if req.MeetingTime != nil {
		mt, err := time.Parse(time.RFC3339, *req.MeetingTime)
		if err != nil {
			return nil, apperrors.NewValidationError("meetingTime must be an RFC 3339 timestamp")
		}
		t.MeetingTime = &mt
	}
	if req.BuyerRating != nil {
		if userID != t.BuyerID {
			return nil, apperrors.ErrPermissionDenied
		}
		t.BuyerRating = req.BuyerRating
	}
	if req.SellerRating != nil {
		if userID != t.SellerID {
			return nil, apperrors.ErrPermissionDenied
		}
		t.SellerRating = req.SellerRating
	}
	if req.BuyerReview != nil {
		if userID != t.BuyerID {
			return nil, apperrors.ErrPermissionDenied
		}
		t.BuyerReview = req.BuyerReview
	}
	if req.SellerReview != nil {
		if userID != t.SellerID {
			return nil, apperrors.ErrPermissionDenied
		}
		t.SellerReview = req.SellerReview
	}

	if err := s.transactionRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("updating transaction: %w", err)
	}

	if completed {
		s.settle(ctx, t)
	}

	if req.Status != nil {
		other := t.SellerID
		if userID == t.SellerID {
			other = t.BuyerID
		}
		s.notify(ctx, other, "Transaction updated",
			fmt.Sprintf("Transaction #%d is now %s.", t.ID, t.Status))
	}

	return t, nil
}

// settle folds a completed transaction into both accounts and closes the
// listing. The buyer's rating of the seller lands on the seller and vice
// versa.
func (s *TransactionService) settle(ctx context.Context, t *models.Transaction) {
	if err := s.userRepo.RecordCompletedTransaction(ctx, t.SellerID, t.BuyerRating); err != nil {
		s.logger.Warn().Err(err).Int64("userID", t.SellerID).Msg("Failed to record completed transaction")
	}
	if err := s.userRepo.RecordCompletedTransaction(ctx, t.BuyerID, t.SellerRating); err != nil {
		s.logger.Warn().Err(err).Int64("userID", t.BuyerID).Msg("Failed to record completed transaction")
	}

	book, err := s.bookRepo.GetByID(ctx, t.BookID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("bookID", t.BookID).Msg("Failed to load book after completion")
		return
	}
	if book.IsAvailable {
		book.IsAvailable = false
		if err := s.bookRepo.Update(ctx, book); err != nil {
			s.logger.Warn().Err(err).Int64("bookID", t.BookID).Msg("Failed to close listing after completion")
		}
	}
}

func (s *TransactionService) notify(ctx context.Context, userID int64, title, content string) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil && !user.Preferences.Notifications.Transactions {
		return
	}
	n := &models.Notification{
		UserID:  userID,
		Type:    models.NotificationTransaction,
		Title:   title,
		Content: content,
	}
	if _, err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to create transaction notification")
	}
}
