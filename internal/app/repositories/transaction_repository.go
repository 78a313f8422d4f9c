package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

// TransactionRepository handles marketplace transaction database operations
type TransactionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var transactionColumns = []string{
	"id", "book_id", "buyer_id", "seller_id", "amount", "type", "status",
	"meeting_point", "meeting_time", "buyer_rating", "seller_rating",
	"buyer_review", "seller_review", "created_at", "completed_at",
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID,
		&t.BookID,
		&t.BuyerID,
		&t.SellerID,
		&t.Amount,
		&t.Type,
		&t.Status,
		&t.MeetingPoint,
		&t.MeetingTime,
		&t.BuyerRating,
		&t.SellerRating,
		&t.BuyerReview,
		&t.SellerReview,
		&t.CreatedAt,
		&t.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new transaction with pending status
func (r *TransactionRepository) Create(ctx context.Context, t *models.Transaction) (int64, error) {
	query := `
		INSERT INTO transactions (
			book_id, buyer_id, seller_id, amount, type, status, meeting_point, meeting_time
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		t.BookID,
		t.BuyerID,
		t.SellerID,
		t.Amount,
		t.Type,
		t.Status,
		t.MeetingPoint,
		t.MeetingTime,
	).Scan(&t.ID, &t.CreatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating transaction: %w", err)
	}
	return t.ID, nil
}

// GetByID retrieves a transaction by id
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	sql, args, err := r.sb.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get transaction query: %w", err)
	}

	t, err := scanTransaction(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("error retrieving transaction: %w", err)
	}
	return t, nil
}

// Update persists the mutable fields of a transaction
func (r *TransactionRepository) Update(ctx context.Context, t *models.Transaction) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE transactions SET
			status = $2, meeting_point = $3, meeting_time = $4, buyer_rating = $5,
			seller_rating = $6, buyer_review = $7, seller_review = $8, completed_at = $9
		WHERE id = $1`,
		t.ID,
		t.Status,
		t.MeetingPoint,
		t.MeetingTime,
		t.BuyerRating,
		t.SellerRating,
		t.BuyerReview,
		t.SellerReview,
		t.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("error updating transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// ListForUser retrieves transactions where the user is buyer or seller,
// newest first.
func (r *TransactionRepository) ListForUser(ctx context.Context, userID int64) ([]*models.Transaction, error) {
	sql, args, err := r.sb.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Or{
			squirrel.Eq{"buyer_id": userID},
			squirrel.Eq{"seller_id": userID},
		}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}
