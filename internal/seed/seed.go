package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/campusconnect/backend/internal/app/models"
	appRepos "github.com/campusconnect/backend/internal/app/repositories"
	"github.com/campusconnect/backend/internal/config"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/auth"
)

// CreateDefaultData ensures the seeded admin account exists and, on a
// fresh database, inserts a handful of sample listings and events so the
// app is not empty on first run.
func CreateDefaultData(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	bookRepo := appRepos.NewBookRepository(dbPool)
	eventRepo := appRepos.NewEventRepository(dbPool)

	adminID, created, err := ensureAdmin(ctx, cfg, userRepo, lgr)
	if err != nil {
		return err
	}
	if !created {
		// Admin already present, assume the rest of the seed ran before.
		return nil
	}

	var finalErr error
	if err := seedSampleBooks(ctx, bookRepo, userRepo, cfg, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedSampleEvents(ctx, eventRepo, adminID, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	return finalErr
}

func ensureAdmin(ctx context.Context, cfg *config.Config, userRepo *appRepos.UserRepository, lgr zerolog.Logger) (int64, bool, error) {
	existing, err := userRepo.GetByEmail(ctx, cfg.University.AdminEmail)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return 0, false, err
	}

	password := cfg.University.AdminPassword
	if password == "" {
		password = "ChangeMe123"
		lgr.Warn().Msg("ADMIN_PASSWORD not set, seeding admin with the default password")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, false, err
	}

	admin := &appModels.User{
		Name:        "Campus Admin",
		Email:       cfg.University.AdminEmail,
		Password:    hash,
		Role:        appModels.RoleAdmin,
		IsActive:    true,
		IsVerified:  true,
		Preferences: appModels.DefaultPreferences(),
	}
	id, err := userRepo.Create(ctx, admin)
	if err != nil {
		return 0, false, err
	}

	lgr.Info().Int64("userID", id).Str("email", admin.Email).Msg("Seeded admin account")
	return id, true, nil
}

func seedSampleBooks(ctx context.Context, bookRepo *appRepos.BookRepository, userRepo *appRepos.UserRepository, cfg *config.Config, lgr zerolog.Logger) error {
	seller := &appModels.User{
		Name:        "Sarah Johnson",
		Email:       "sarah.johnson@" + cfg.University.AllowedEmailDomain,
		Password:    "*", // Not loginable; sample data only
		Role:        appModels.RoleStudent,
		IsActive:    true,
		IsVerified:  true,
		Preferences: appModels.DefaultPreferences(),
	}
	sellerID, err := userRepo.Create(ctx, seller)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	price := 45.0
	suggested := 50.0
	department := "Computer Science"
	course := "CS201"
	isbn := "978-0262033848"
	books := []*appModels.Book{
		{
			Title:          "Introduction to Algorithms",
			Author:         "Cormen, Leiserson, Rivest, Stein",
			ISBN:           &isbn,
			PostedBy:       sellerID,
			PosterName:     seller.Name,
			Condition:      appModels.ConditionGood,
			Price:          &price,
			SuggestedPrice: &suggested,
			Type:           appModels.BookTypeSell,
			Department:     &department,
			CourseCode:     &course,
			IsAvailable:    true,
		},
	}
	for _, b := range books {
		if _, err := bookRepo.Create(ctx, b); err != nil {
			lgr.Error().Err(err).Str("title", b.Title).Msg("Failed to seed sample book")
			return err
		}
	}

	lgr.Info().Int("count", len(books)).Msg("Seeded sample books")
	return nil
}

func seedSampleEvents(ctx context.Context, eventRepo *appRepos.EventRepository, organizerID int64, lgr zerolog.Logger) error {
	events := []*appModels.Event{
		{
			Name:       "Welcome Week Mixer",
			Date:       time.Now().AddDate(0, 0, 14).Truncate(24 * time.Hour),
			Time:       "18:00",
			Duration:   "3 hours",
			Venue:      "Student Union Hall",
			Category:   appModels.CategorySocial,
			Department: "Student Affairs",
			Organizer:  "Campus Admin",
			OrganizerID: organizerID,
			IsApproved: true,
			IsActive:   true,
			Attendees:  []int64{},
			Tags:       []string{"welcome", "social"},
		},
	}
	for _, e := range events {
		if _, err := eventRepo.Create(ctx, e); err != nil {
			lgr.Error().Err(err).Str("name", e.Name).Msg("Failed to seed sample event")
			return err
		}
	}

	lgr.Info().Int("count", len(events)).Msg("Seeded sample events")
	return nil
}
