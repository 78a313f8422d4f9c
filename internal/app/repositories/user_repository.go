package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/dberrors"
	"github.com/campusconnect/backend/internal/pkg/logger"
)

// userColumns is the canonical column list scanned into a models.User
const userColumns = `id, email, password, name, role, department, year, profile_picture,
	phone, dorm_room, rating, total_transactions, is_verified, is_active,
	suspension_reason, last_login_at, preferences, created_at, updated_at`

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var prefs []byte

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Name,
		&user.Role,
		&user.Department,
		&user.Year,
		&user.ProfilePicture,
		&user.Phone,
		&user.DormRoom,
		&user.Rating,
		&user.TotalTransactions,
		&user.IsVerified,
		&user.IsActive,
		&user.SuspensionReason,
		&user.LastLoginAt,
		&prefs,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &user.Preferences); err != nil {
			return nil, fmt.Errorf("error decoding user preferences: %w", err)
		}
	}

	return &user, nil
}

// Create inserts a new user and returns its id
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		return 0, fmt.Errorf("error encoding user preferences: %w", err)
	}

	query := `
		INSERT INTO users (
			email, password, name, role, department, year, rating,
			total_transactions, is_verified, is_active, preferences
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		user.Email,
		user.Password,
		user.Name,
		user.Role,
		user.Department,
		user.Year,
		user.Rating,
		user.TotalTransactions,
		user.IsVerified,
		user.IsActive,
		prefs,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return user.ID, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}
	return user, nil
}

// Update persists profile fields of an existing user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		return fmt.Errorf("error encoding user preferences: %w", err)
	}

	query := `
		UPDATE users SET
			name = $2, department = $3, year = $4, profile_picture = $5,
			phone = $6, dorm_room = $7, preferences = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err = r.db.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Department,
		user.Year,
		user.ProfilePicture,
		user.Phone,
		user.DormRoom,
		prefs,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	return nil
}

// UpdateLastLogin stamps the last successful login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SetActivation flips activation/verification state, used by admin approval
// and suspension. A nil reason clears any stored suspension reason.
func (r *UserRepository) SetActivation(ctx context.Context, id int64, active, verified bool, reason *string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET is_active = $2, is_verified = $3, suspension_reason = $4, updated_at = NOW()
		WHERE id = $1`,
		id, active, verified, reason)
	if err != nil {
		return fmt.Errorf("error updating user activation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// List retrieves all users ordered by creation time, newest first
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC`, userColumns)
	return r.queryUsers(ctx, query)
}

// ListPending retrieves users awaiting admin approval, oldest first
func (r *UserRepository) ListPending(ctx context.Context) ([]*models.User, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE is_active = FALSE AND suspension_reason IS NULL ORDER BY created_at ASC`,
		userColumns)
	return r.queryUsers(ctx, query)
}

func (r *UserRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// RecordCompletedTransaction bumps the transaction counter and folds the
// received rating into the running average when one is given.
func (r *UserRepository) RecordCompletedTransaction(ctx context.Context, id int64, rating *int) error {
	var err error
	if rating != nil {
		_, err = r.db.Exec(ctx, `
			UPDATE users SET
				rating = (rating * total_transactions + $2) / (total_transactions + 1),
				total_transactions = total_transactions + 1,
				updated_at = NOW()
			WHERE id = $1`,
			id, float64(*rating))
	} else {
		_, err = r.db.Exec(ctx, `
			UPDATE users SET total_transactions = total_transactions + 1, updated_at = NOW()
			WHERE id = $1`,
			id)
	}
	if err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Error recording completed transaction")
		return fmt.Errorf("error recording completed transaction: %w", err)
	}
	return nil
}
