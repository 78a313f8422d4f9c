package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:         "test-secret",
		AccessTokenExp:    time.Hour,
		RefreshTokenExp:   720 * time.Hour,
		SessionRefreshExp: 24 * time.Hour,
		TokenIssuer:       "test",
	})
}

type authFixture struct {
	service       *AuthService
	users         *fakeUserStore
	tokens        *fakeTokenStore
	notifications *fakeNotificationStore
}

func newAuthFixture() *authFixture {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	notifications := newFakeNotificationStore()
	return &authFixture{
		service:       NewAuthService(users, tokens, notifications, testJWTService(), "university.edu", zerolog.Nop()),
		users:         users,
		tokens:        tokens,
		notifications: notifications,
	}
}

func TestRegisterRejectsForeignDomainBeforeStore(t *testing.T) {
	fx := newAuthFixture()

	_, err := fx.service.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Eve",
		Email:    "eve@gmail.com",
		Password: "Secret123",
	})

	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Zero(t, fx.users.createCalls, "rejected registration must not touch the store")
}

func TestRegisterNormalizesEmailAndStartsPending(t *testing.T) {
	fx := newAuthFixture()

	user, err := fx.service.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Sarah Johnson",
		Email:    "  Sarah.Johnson@University.EDU ",
		Password: "Secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "sarah.johnson@university.edu", user.Email)
	assert.False(t, user.IsActive, "new accounts wait for approval")
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NotEqual(t, "Secret123", user.Password, "password must be stored hashed")
	assert.True(t, user.Preferences.Notifications.Messages, "defaults applied")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	fx := newAuthFixture()
	req := &dto.RegisterRequest{Name: "Sarah", Email: "sarah@university.edu", Password: "Secret123"}

	_, err := fx.service.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = fx.service.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterWeakPassword(t *testing.T) {
	fx := newAuthFixture()

	_, err := fx.service.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Sarah",
		Email:    "sarah@university.edu",
		Password: "letters",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Zero(t, fx.users.createCalls)
}

func TestLoginLifecycle(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	registered, err := fx.service.Register(ctx, &dto.RegisterRequest{
		Name:     "Sarah",
		Email:    "sarah@university.edu",
		Password: "Secret123",
	})
	require.NoError(t, err)

	login := &dto.LoginRequest{Email: "sarah@university.edu", Password: "Secret123"}

	_, _, err = fx.service.Login(ctx, login)
	assert.ErrorIs(t, err, apperrors.ErrAccountPending, "pending accounts cannot sign in")

	require.NoError(t, fx.users.SetActivation(ctx, registered.ID, true, true, nil))

	user, tokens, err := fx.service.Login(ctx, login)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotNil(t, user.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	registered, err := fx.service.Register(ctx, &dto.RegisterRequest{
		Name:     "Sarah",
		Email:    "sarah@university.edu",
		Password: "Secret123",
	})
	require.NoError(t, err)
	require.NoError(t, fx.users.SetActivation(ctx, registered.ID, true, true, nil))

	_, _, err = fx.service.Login(ctx, &dto.LoginRequest{Email: "sarah@university.edu", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = fx.service.Login(ctx, &dto.LoginRequest{Email: "nobody@university.edu", Password: "Secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials, "unknown accounts look like bad credentials")
}

func TestLoginSuspendedAccount(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	registered, err := fx.service.Register(ctx, &dto.RegisterRequest{
		Name:     "Sarah",
		Email:    "sarah@university.edu",
		Password: "Secret123",
	})
	require.NoError(t, err)
	reason := "spam listings"
	require.NoError(t, fx.users.SetActivation(ctx, registered.ID, false, true, &reason))

	_, _, err = fx.service.Login(ctx, &dto.LoginRequest{Email: "sarah@university.edu", Password: "Secret123"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestLoginRememberMeControlsRefreshLifetime(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	registered, err := fx.service.Register(ctx, &dto.RegisterRequest{
		Name:     "Sarah",
		Email:    "sarah@university.edu",
		Password: "Secret123",
	})
	require.NoError(t, err)
	require.NoError(t, fx.users.SetActivation(ctx, registered.ID, true, true, nil))

	_, short, err := fx.service.Login(ctx, &dto.LoginRequest{
		Email: "sarah@university.edu", Password: "Secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, int((24 * time.Hour).Seconds()), short.RefreshExpiresIn)
	_, expiresAt, _, rememberMe, err := fx.tokens.Get(ctx, short.RefreshToken)
	require.NoError(t, err)
	assert.False(t, rememberMe)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	_, long, err := fx.service.Login(ctx, &dto.LoginRequest{
		Email: "sarah@university.edu", Password: "Secret123", RememberMe: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int((720 * time.Hour).Seconds()), long.RefreshExpiresIn)
	_, expiresAt, _, rememberMe, err = fx.tokens.Get(ctx, long.RefreshToken)
	require.NoError(t, err)
	assert.True(t, rememberMe)
	assert.WithinDuration(t, time.Now().Add(720*time.Hour), expiresAt, time.Minute)
}

func TestRefreshPreservesRememberMeLifetime(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	user := fx.users.add(&models.User{Email: "sarah@university.edu", Name: "Sarah", IsActive: true})
	short, err := fx.service.issueTokens(ctx, user, false)
	require.NoError(t, err)
	long, err := fx.service.issueTokens(ctx, user, true)
	require.NoError(t, err)

	rotated, err := fx.service.Refresh(ctx, short.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int((24*time.Hour).Seconds()), rotated.RefreshExpiresIn,
		"a session login stays short-lived across rotation")

	rotated, err = fx.service.Refresh(ctx, long.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int((720*time.Hour).Seconds()), rotated.RefreshExpiresIn,
		"a remember-me login stays long-lived across rotation")
}

func TestRefreshRotatesToken(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	user := fx.users.add(&models.User{Email: "sarah@university.edu", Name: "Sarah", IsActive: true})
	first, err := fx.service.issueTokens(ctx, user, false)
	require.NoError(t, err)

	second, err := fx.service.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, _, revoked, _, err := fx.tokens.Get(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.True(t, revoked, "the presented token is revoked on rotation")

	_, err = fx.service.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked, "a rotated token cannot be replayed")
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	user := fx.users.add(&models.User{Email: "sarah@university.edu", Name: "Sarah", IsActive: true})
	require.NoError(t, fx.tokens.Create(ctx, "stale", user.ID, time.Now().Add(-time.Minute), false))

	_, err := fx.service.Refresh(ctx, "stale")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestRefreshRejectsDeactivatedAccount(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	user := fx.users.add(&models.User{Email: "sarah@university.edu", Name: "Sarah", IsActive: true})
	tokens, err := fx.service.issueTokens(ctx, user, false)
	require.NoError(t, err)

	user.IsActive = false

	_, err = fx.service.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestLogoutTolerantOfUnknownToken(t *testing.T) {
	fx := newAuthFixture()

	assert.NoError(t, fx.service.Logout(context.Background(), "never-issued"))
}

func TestGetProfileRequiresActiveAccount(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	active := fx.users.add(&models.User{Email: "a@university.edu", Name: "A", IsActive: true})
	inactive := fx.users.add(&models.User{Email: "b@university.edu", Name: "B", IsActive: false})

	got, err := fx.service.GetProfile(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)

	_, err = fx.service.GetProfile(ctx, inactive.ID)
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled, "session resumption fails for deactivated accounts")

	_, err = fx.service.GetProfile(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
