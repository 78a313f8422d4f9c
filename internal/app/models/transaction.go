package models

import "time"

// Transaction defines a marketplace exchange based on the 'transactions' table
type Transaction struct {
	ID           int64             `json:"id" db:"id"`
	BookID       int64             `json:"bookId" db:"book_id"`
	BuyerID      int64             `json:"buyerId" db:"buyer_id"`
	SellerID     int64             `json:"sellerId" db:"seller_id"`
	Amount       *float64          `json:"amount,omitempty" db:"amount"`
	Type         TransactionType   `json:"type" db:"type"`
	Status       TransactionStatus `json:"status" db:"status"`
	MeetingPoint *string           `json:"meetingPoint,omitempty" db:"meeting_point"`
	MeetingTime  *time.Time        `json:"meetingTime,omitempty" db:"meeting_time"`
	BuyerRating  *int              `json:"buyerRating,omitempty" db:"buyer_rating"`
	SellerRating *int              `json:"sellerRating,omitempty" db:"seller_rating"`
	BuyerReview  *string           `json:"buyerReview,omitempty" db:"buyer_review"`
	SellerReview *string           `json:"sellerReview,omitempty" db:"seller_review"`
	CreatedAt    time.Time         `json:"createdAt" db:"created_at"`
	CompletedAt  *time.Time        `json:"completedAt,omitempty" db:"completed_at"`
}

// CanTransitionTo reports whether a status change is allowed.
// pending -> confirmed | cancelled, confirmed -> completed | cancelled.
func (t *Transaction) CanTransitionTo(next TransactionStatus) bool {
	switch t.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}
