package dto

// CreateBookRequest is the payload for posting a listing.
// Owner fields are never part of the payload; they come from the session.
type CreateBookRequest struct {
	Title          string   `json:"title" binding:"required,min=1,max=255"`
	Author         string   `json:"author" binding:"required,min=1,max=255"`
	ISBN           *string  `json:"isbn,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Condition      string   `json:"condition" binding:"required,oneof='New' 'Like New' 'Good' 'Fair' 'Poor'"`
	Price          *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	SuggestedPrice *float64 `json:"suggestedPrice,omitempty" binding:"omitempty,gte=0"`
	Type           string   `json:"type" binding:"required,oneof=sell buy exchange rent"`
	Department     *string  `json:"department,omitempty"`
	CourseCode     *string  `json:"courseCode,omitempty"`
	Location       *string  `json:"location,omitempty"`
}

// UpdateBookRequest is the payload for editing a listing; nil fields are untouched
type UpdateBookRequest struct {
	Title          *string  `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Author         *string  `json:"author,omitempty" binding:"omitempty,min=1,max=255"`
	ISBN           *string  `json:"isbn,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Condition      *string  `json:"condition,omitempty" binding:"omitempty,oneof='New' 'Like New' 'Good' 'Fair' 'Poor'"`
	Price          *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	SuggestedPrice *float64 `json:"suggestedPrice,omitempty" binding:"omitempty,gte=0"`
	Type           *string  `json:"type,omitempty" binding:"omitempty,oneof=sell buy exchange rent"`
	Department     *string  `json:"department,omitempty"`
	CourseCode     *string  `json:"courseCode,omitempty"`
	Location       *string  `json:"location,omitempty"`
	IsAvailable    *bool    `json:"isAvailable,omitempty"`
}

// SearchBooksQuery holds the query parameters accepted by book search
type SearchBooksQuery struct {
	Query      string   `form:"q"`
	Department *string  `form:"department"`
	Condition  *string  `form:"condition" binding:"omitempty,oneof='New' 'Like New' 'Good' 'Fair' 'Poor'"`
	Type       *string  `form:"type" binding:"omitempty,oneof=sell buy exchange rent"`
	PriceMin   *float64 `form:"priceMin" binding:"omitempty,gte=0"`
	PriceMax   *float64 `form:"priceMax" binding:"omitempty,gte=0"`
}
