package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

func testService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:         "test-secret",
		AccessTokenExp:    time.Hour,
		RefreshTokenExp:   720 * time.Hour,
		SessionRefreshExp: 24 * time.Hour,
		TokenIssuer:       "test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := testService()
	user := &models.User{ID: 42, Email: "jane@university.edu", Role: models.RoleStudent}

	access, refresh, expiresIn, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateAndExtractClaims(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jane@university.edu", claims.Email)
	assert.Equal(t, string(models.RoleStudent), claims.Role)
	assert.Equal(t, "test", claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	user := &models.User{ID: 1, Email: "a@university.edu", Role: models.RoleStudent}
	access, _, _, err := testService().GenerateTokenPair(user)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})

	_, err = other.ValidateAndExtractClaims(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	svc := testService()
	user := &models.User{ID: 1, Email: "a@university.edu", Role: models.RoleStudent}
	access, _, _, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(access + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateAndExtractClaims("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  -time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	user := &models.User{ID: 1, Email: "a@university.edu", Role: models.RoleStudent}
	access, _, _, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired,
		"expiry is detectable with the service-layer sentinel")
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenTTL(t *testing.T) {
	svc := testService()
	assert.Equal(t, 720*time.Hour, svc.RefreshTokenTTL(true), "remember-me gets the long expiry")
	assert.Equal(t, 24*time.Hour, svc.RefreshTokenTTL(false))

	// Without a session expiry every token gets the long lifetime.
	svc = NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "test",
	})
	assert.Equal(t, 720*time.Hour, svc.RefreshTokenTTL(false))
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	token, err = ExtractBearerToken("bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	for _, header := range []string{"", "abc123", "Bearer", "Bearer ", "Basic abc123"} {
		_, err := ExtractBearerToken(header)
		assert.ErrorIs(t, err, ErrInvalidFormat, "header %q", header)
	}
}
