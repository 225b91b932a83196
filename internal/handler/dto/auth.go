// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/taskhive/taskhive/internal/model"
	"github.com/taskhive/taskhive/internal/validation"
)

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse represents the public view of a user.
// The password hash is deliberately absent.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// ErrorResponse represents an API error. Details is populated only for
// validation failures.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details []validation.Violation `json:"details,omitempty"`
}

// ToUserResponse converts a User model to its public representation.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
	}
}
