package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

const (
	defaultUserPageLimit = 20
	maxUserPageLimit     = 100
)

// AuthService implements registration, login and the token lifecycle.
// Password hashing happens here, explicitly, before the persistence call:
// a digest is stored on create and on password change, and never re-hashed.
type AuthService struct {
	repo       ports.UserRepository
	tokens     *TokenIssuer
	bcryptCost int
	log        zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenIssuer, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost <= 0 {
		bcryptCost = 10
	}
	return &AuthService{repo: repo, tokens: tokens, bcryptCost: bcryptCost, log: log}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, *ports.TokenPair, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        normalizeEmail(input.Email),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(ctx, created)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, pair, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *ports.TokenPair, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// Missing accounts and bad passwords are indistinguishable to the
		// client.
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, domain.ErrUserInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return user, pair, nil
}

// Refresh rotates the stored refresh token: the presented token must match
// the stored hash, and the newly issued token replaces it. Concurrent
// refreshes for the same user are last-writer-wins.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	userID, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	if user.RefreshTokenHash == "" || user.RefreshTokenHash != HashToken(refreshToken) {
		return nil, domain.ErrTokenRevoked
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("user_id", user.ID).Msg("refresh token rotated")
	return pair, nil
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.repo.SetRefreshTokenHash(ctx, userID, "")
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		user.Email = normalizeEmail(*input.Email)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	// Other sessions holding the old refresh token must log in again.
	if err := s.repo.SetRefreshTokenHash(ctx, userID, ""); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to revoke refresh token after password change")
	}

	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

func (s *AuthService) ListUsers(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultUserPageLimit
	}
	if filter.Limit > maxUserPageLimit {
		filter.Limit = maxUserPageLimit
	}
	return s.repo.List(ctx, filter)
}

// issuePair mints a fresh access/refresh pair and stores the refresh hash,
// invalidating whatever token was outstanding before.
func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetRefreshTokenHash(ctx, user.ID, HashToken(refresh)); err != nil {
		return nil, err
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
