package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
)

// UserService handles self-service profile operations
type UserService struct {
	userRepo UserStore
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo UserStore, logger zerolog.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// Get returns a user by id
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile edits the session user's own profile. Role, verification
// and activation are untouchable here; admins change those through the
// moderation endpoints.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Department != nil {
		user.Department = req.Department
	}
	if req.Year != nil {
		user.Year = req.Year
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = req.ProfilePicture
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.DormRoom != nil {
		user.DormRoom = req.DormRoom
	}
	if req.Preferences != nil {
		user.Preferences = *req.Preferences
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return user, nil
}
