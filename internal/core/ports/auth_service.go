package ports

import (
	"context"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

// TokenPair is the credential set returned by register, login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateProfileInput carries optional profile changes. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

// AuthService implements the registration, login and token lifecycle flows.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error)
	// Refresh validates the presented refresh token, rotates the stored one
	// and returns a fresh pair. The previous refresh token is rejected
	// afterwards.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	// Logout revokes the user's outstanding refresh token.
	Logout(ctx context.Context, userID string) error
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error)
	// ChangePassword verifies the current password before storing a new
	// hash, and revokes the refresh token so other sessions must log in
	// again.
	ChangePassword(ctx context.Context, userID, current, next string) error
	// ListUsers is the admin-only paginated account listing.
	ListUsers(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}
