package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User models an authenticated actor in the system.
//
// PasswordHash and RefreshTokenHash never leave the server. The hash of the
// currently valid refresh token is stored so rotation and logout can revoke
// it; an empty hash means no refresh token is outstanding.
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Role             string    `json:"role"`
	IsActive         bool      `json:"is_active"`
	RefreshTokenHash string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PublicProfile is the client-safe projection of a User.
type PublicProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Public strips everything a client must not see.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
