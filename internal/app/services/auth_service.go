package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/auth"
	"github.com/campusconnect/backend/internal/pkg/validation"
)

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	userRepo         UserStore
	tokenRepo        TokenStore
	notificationRepo NotificationStore
	jwtService       *auth.JWTService
	allowedDomain    string
	logger           zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo UserStore,
	tokenRepo TokenStore,
	notificationRepo NotificationStore,
	jwtService *auth.JWTService,
	allowedDomain string,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		tokenRepo:        tokenRepo,
		notificationRepo: notificationRepo,
		jwtService:       jwtService,
		allowedDomain:    allowedDomain,
		logger:           logger,
	}
}

// Register creates a new account. The account starts inactive and stays
// that way until an admin approves it; the institutional-domain check runs
// before anything touches the store, so rejected registrations leave no
// trace.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewValidationError("invalid email format")
	}
	if !validation.IsInstitutionalEmail(email, s.allowedDomain) {
		return nil, fmt.Errorf("%w: registration requires a @%s address", apperrors.ErrValidationFailed, s.allowedDomain)
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, apperrors.NewValidationError("password must be at least 8 characters and contain a letter and a digit")
	}
	if !validation.IsValidName(req.Name) {
		return nil, apperrors.NewValidationError("invalid name")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	role := models.RoleStudent
	if req.Role != "" {
		role = models.RoleType(req.Role)
	}

	user := &models.User{
		Name:        strings.TrimSpace(req.Name),
		Email:       email,
		Password:    hashed,
		Role:        role,
		IsActive:    false,
		IsVerified:  false,
		Preferences: models.DefaultPreferences(),
	}
	if req.Department != nil && *req.Department != "" {
		user.Department = req.Department
	}
	if req.Year != nil && *req.Year != "" {
		user.Year = req.Year
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	user.ID = id

	s.logger.Info().Int64("userID", id).Str("email", email).Msg("User registered, pending approval")
	return user, nil
}

// Login verifies credentials and issues a token pair. Pending and
// suspended accounts are rejected with distinct errors so the client can
// explain which state the account is in.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, *dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("looking up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		if user.SuspensionReason != nil {
			return nil, nil, apperrors.ErrAccountDisabled
		}
		return nil, nil, apperrors.ErrAccountPending
	}

	tokens, err := s.issueTokens(ctx, user, req.RememberMe)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	return user, tokens, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh pair is issued with the same remember-me lifetime as the
// original login. A revoked or expired token yields an error and no new
// tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, expiresAt, revoked, rememberMe, err := s.tokenRepo.Get(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(expiresAt) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("revoking refresh token: %w", err)
	}

	return s.issueTokens(ctx, user, rememberMe)
}

// Logout revokes the presented refresh token. Unknown tokens are treated
// as already logged out.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	err := s.tokenRepo.Revoke(ctx, refreshToken)
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return err
	}
	return nil
}

// GetProfile returns the authoritative server-side view of an account.
// Session resumption goes through here: the client never trusts cached
// user data without this check succeeding.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	return user, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User, rememberMe bool) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	refreshTTL := s.jwtService.RefreshTokenTTL(rememberMe)
	if err := s.tokenRepo.Create(ctx, refreshToken, user.ID, time.Now().Add(refreshTTL), rememberMe); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: int(refreshTTL.Seconds()),
		User:             user,
	}, nil
}
