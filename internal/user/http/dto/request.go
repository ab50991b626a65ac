// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/identity/internal/user/domain"
	customValidation "github.com/allisson/identity/internal/validation"
)

// RegisterRequest is the body of POST /v1/register.
type RegisterRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
	Password  string `json:"password"` //nolint:gosec // request field
	Email     string `json:"email"`
}

// Validate checks if the register request is valid.
func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Firstname,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, 255),
		),
		validation.Field(&r.Lastname,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, 255),
		),
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NoWhitespace,
			validation.RuneLength(1, 64),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(8, 128),
		),
	)
}

// ToInput converts the request into the use case input.
func (r *RegisterRequest) ToInput() domain.RegisterInput {
	return domain.RegisterInput{
		Firstname: r.Firstname,
		Lastname:  r.Lastname,
		Username:  r.Username,
		Password:  r.Password,
		Email:     r.Email,
	}
}

// LoginRequest is the body of POST /v1/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request field
}

// Validate checks if the login request is valid. Format rules are not applied to
// the email so that a malformed address fails the same way as an unknown one.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			validation.Length(1, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, 128),
		),
	)
}
