package handler

import (
	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

// errorResponse documents the error envelope rendered by the central HTTP
// error handler.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=2,max=50"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}

// authResponse is returned by register, login and refresh. User and Tokens
// are omitted when an operation does not produce them.
type authResponse struct {
	Success bool                  `json:"success"`
	User    *domain.PublicProfile `json:"user,omitempty"`
	Tokens  *ports.TokenPair      `json:"tokens,omitempty"`
}

type profileResponse struct {
	Success bool                 `json:"success"`
	User    domain.PublicProfile `json:"user"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type listUsersResponse struct {
	Success    bool                   `json:"success"`
	Data       []domain.PublicProfile `json:"data"`
	Pagination paginationResponse     `json:"pagination"`
}
