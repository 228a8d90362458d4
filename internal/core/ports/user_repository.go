package ports

import (
	"context"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

// ListUsersFilter carries pagination for the admin user listing.
type ListUsersFilter struct {
	Page  int // 1-based
	Limit int // capped at 100 by the service
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update persists mutable profile fields (name, email, password hash,
	// refresh token hash, is_active) and bumps updated_at. The ID and role
	// are never modified through this path.
	Update(ctx context.Context, user *domain.User) error
	// SetRefreshTokenHash stores the hash of the current refresh token.
	// An empty hash revokes any outstanding refresh token.
	SetRefreshTokenHash(ctx context.Context, userID, hash string) error
	// List returns a page of users and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}
