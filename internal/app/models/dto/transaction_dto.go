package dto

// CreateTransactionRequest initiates a transaction for a listing.
// The buyer is the authenticated user; the seller is the listing owner.
type CreateTransactionRequest struct {
	BookID       int64    `json:"bookId" binding:"required,gt=0"`
	Amount       *float64 `json:"amount,omitempty" binding:"omitempty,gte=0"`
	Type         string   `json:"type" binding:"required,oneof=sale rental exchange"`
	MeetingPoint *string  `json:"meetingPoint,omitempty"`
	MeetingTime  *string  `json:"meetingTime,omitempty"`
}

// UpdateTransactionRequest advances or annotates a transaction
type UpdateTransactionRequest struct {
	Status       *string `json:"status,omitempty" binding:"omitempty,oneof=confirmed completed cancelled"`
	MeetingPoint *string `json:"meetingPoint,omitempty"`
	MeetingTime  *string `json:"meetingTime,omitempty"`
	BuyerRating  *int    `json:"buyerRating,omitempty" binding:"omitempty,gte=1,lte=5"`
	SellerRating *int    `json:"sellerRating,omitempty" binding:"omitempty,gte=1,lte=5"`
	BuyerReview  *string `json:"buyerReview,omitempty"`
	SellerReview *string `json:"sellerReview,omitempty"`
}
