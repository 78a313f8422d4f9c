package dto

import "github.com/campusconnect/backend/internal/app/models"

// RegisterRequest is the payload for account registration.
// New accounts stay inactive until an admin approves them.
type RegisterRequest struct {
	Name       string  `json:"name" binding:"required,min=2,max=100" example:"Sarah Johnson"`
	Email      string  `json:"email" binding:"required,email" example:"sarah.johnson@university.edu"`
	Password   string  `json:"password" binding:"required,min=8" example:"Secret123"`
	Role       string  `json:"role,omitempty" binding:"omitempty,oneof=student faculty" example:"student"`
	Department *string `json:"department,omitempty" example:"Computer Science"`
	Year       *string `json:"year,omitempty" example:"3rd Year"`
}

// LoginRequest is the payload for credential sign-in
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// RefreshTokenRequest is the payload for refresh token rotation
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest revokes the given refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string       `json:"accessToken"`
	RefreshToken     string       `json:"refreshToken"`
	ExpiresIn        int          `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int          `json:"refreshExpiresIn" example:"2592000"`
	User             *models.User `json:"user"`
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	Message string       `json:"message" example:"Registration successful! Please wait for admin approval."`
	User    *models.User `json:"user"`
}
