package dto

import (
	"time"

	authDomain "github.com/allisson/identity/internal/auth/domain"
	"github.com/allisson/identity/internal/user/domain"
)

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// MapUserToRegisterResponse converts a stored user to a RegisterResponse.
func MapUserToRegisterResponse(user *domain.User) RegisterResponse {
	return RegisterResponse{
		ID:        user.ID().String(),
		Username:  user.Profile.Username,
		CreatedAt: user.Profile.CreatedAt,
	}
}

// LoginResponse carries an issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"` //nolint:gosec // issued to the caller
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MapTokenToLoginResponse converts an issued token to a LoginResponse.
func MapTokenToLoginResponse(token *authDomain.Token) LoginResponse {
	return LoginResponse{
		Token:     token.Value,
		TokenType: authDomain.TokenType,
		ExpiresAt: token.ExpiresAt,
	}
}

// ProfileResponse is the decrypted profile of the authenticated user.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// MapProfileToResponse converts a decrypted profile to a ProfileResponse.
func MapProfileToResponse(profile *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        profile.ID.String(),
		Username:  profile.Username,
		Firstname: profile.Firstname,
		Lastname:  profile.Lastname,
		Email:     profile.Email,
		CreatedAt: profile.CreatedAt,
	}
}
