package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

// BookRepository handles book listing database operations
type BookRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBookRepository creates a new BookRepository
func NewBookRepository(db *pgxpool.Pool) *BookRepository {
	return &BookRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var bookColumns = []string{
	"id", "title", "author", "isbn", "posted_by", "poster_name", "description",
	"condition", "price", "suggested_price", "type", "department", "course_code",
	"location", "is_available", "views", "created_at", "updated_at",
}

func scanBook(row pgx.Row) (*models.Book, error) {
	var book models.Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.ISBN,
		&book.PostedBy,
		&book.PosterName,
		&book.Description,
		&book.Condition,
		&book.Price,
		&book.SuggestedPrice,
		&book.Type,
		&book.Department,
		&book.CourseCode,
		&book.Location,
		&book.IsAvailable,
		&book.Views,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Create inserts a new listing and returns its id
func (r *BookRepository) Create(ctx context.Context, book *models.Book) (int64, error) {
	query := `
		INSERT INTO books (
			title, author, isbn, posted_by, poster_name, description, condition,
			price, suggested_price, type, department, course_code, location,
			is_available, views
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		book.Title,
		book.Author,
		book.ISBN,
		book.PostedBy,
		book.PosterName,
		book.Description,
		book.Condition,
		book.Price,
		book.SuggestedPrice,
		book.Type,
		book.Department,
		book.CourseCode,
		book.Location,
		book.IsAvailable,
		book.Views,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating book: %w", err)
	}
	return book.ID, nil
}

// GetByID retrieves a listing by id
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	sql, args, err := r.sb.Select(bookColumns...).
		From("books").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get book query: %w", err)
	}

	book, err := scanBook(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, fmt.Errorf("error retrieving book: %w", err)
	}
	return book, nil
}

// Update persists all mutable fields of a listing and bumps updated_at
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	query := `
		UPDATE books SET
			title = $2, author = $3, isbn = $4, description = $5, condition = $6,
			price = $7, suggested_price = $8, type = $9, department = $10,
			course_code = $11, location = $12, is_available = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.ISBN,
		book.Description,
		book.Condition,
		book.Price,
		book.SuggestedPrice,
		book.Type,
		book.Department,
		book.CourseCode,
		book.Location,
		book.IsAvailable,
	).Scan(&book.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrBookNotFound
		}
		return fmt.Errorf("error updating book: %w", err)
	}
	return nil
}

// Delete removes a listing
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}
	return nil
}

// Search retrieves listings matching the query and filters, newest first.
// An empty query matches everything; filters are ANDed.
func (r *BookRepository) Search(ctx context.Context, query string, filters models.BookFilters) ([]*models.Book, error) {
	builder := r.sb.Select(bookColumns...).
		From("books").
		OrderBy("created_at DESC")

	if q := strings.TrimSpace(query); q != "" {
		pattern := "%" + q + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"author": pattern},
			squirrel.ILike{"isbn": pattern},
			squirrel.ILike{"course_code": pattern},
		})
	}
	if filters.Department != nil {
		builder = builder.Where(squirrel.Eq{"department": *filters.Department})
	}
	if filters.Condition != nil {
		builder = builder.Where(squirrel.Eq{"condition": *filters.Condition})
	}
	if filters.Type != nil {
		builder = builder.Where(squirrel.Eq{"type": *filters.Type})
	}
	if filters.PriceMin != nil {
		builder = builder.Where(squirrel.GtOrEq{"price": *filters.PriceMin})
	}
	if filters.PriceMax != nil {
		builder = builder.Where(squirrel.LtOrEq{"price": *filters.PriceMax})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build book search query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching books: %w", err)
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning book row: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}
	return books, nil
}

// IncrementViews bumps the view counter on a detail fetch
func (r *BookRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE books SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error incrementing book views: %w", err)
	}
	return nil
}
