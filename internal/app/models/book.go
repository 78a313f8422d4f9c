package models

import "time"

// Book defines a marketplace listing based on the 'books' table
type Book struct {
	ID             int64         `json:"id" db:"id"`
	Title          string        `json:"title" db:"title"`
	Author         string        `json:"author" db:"author"`
	ISBN           *string       `json:"isbn,omitempty" db:"isbn"`
	PostedBy       int64         `json:"postedBy" db:"posted_by"`     // Owning user id, always taken from the session
	PosterName     string        `json:"posterName" db:"poster_name"` // Denormalized owner name
	Description    *string       `json:"description,omitempty" db:"description"`
	Condition      BookCondition `json:"condition" db:"condition"`
	Price          *float64      `json:"price,omitempty" db:"price"`
	SuggestedPrice *float64      `json:"suggestedPrice,omitempty" db:"suggested_price"`
	Type           BookType      `json:"type" db:"type"`
	Department     *string       `json:"department,omitempty" db:"department"`
	CourseCode     *string       `json:"courseCode,omitempty" db:"course_code"`
	Location       *string       `json:"location,omitempty" db:"location"`
	IsAvailable    bool          `json:"isAvailable" db:"is_available"`
	Views          int           `json:"views" db:"views"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`
}

// BookFilters are the optional constraints applied by book search.
// Nil fields are not applied; set fields must all match.
type BookFilters struct {
	Department *string
	Condition  *BookCondition
	Type       *BookType
	PriceMin   *float64
	PriceMax   *float64
}
