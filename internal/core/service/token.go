package service

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

const (
	claimTypeAccess  = "access"
	claimTypeRefresh = "refresh"
)

// TokenIssuer mints and verifies the two JWT credential kinds: short-lived
// access tokens and long-lived refresh tokens. Both are HS256-signed and
// self-contained; refresh tokens additionally carry a jti so two tokens for
// the same user are never byte-identical.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccessToken returns a signed access token for the user.
func (i *TokenIssuer) IssueAccessToken(userID, role string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"type": claimTypeAccess,
		"iat":  now.Unix(),
		"exp":  now.Add(i.accessTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// IssueRefreshToken returns a signed refresh token for the user.
func (i *TokenIssuer) IssueRefreshToken(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID,
		"jti":  uuid.NewString(),
		"type": claimTypeRefresh,
		"iat":  now.Unix(),
		"exp":  now.Add(i.refreshTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// ParseRefresh verifies signature, expiry and token type, and returns the
// user ID the token was issued for. Any failure maps to ErrInvalidToken.
func (i *TokenIssuer) ParseRefresh(token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}
	if typ, _ := claims["type"].(string); typ != claimTypeRefresh {
		return "", domain.ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", domain.ErrInvalidToken
	}
	return sub, nil
}

// HashToken returns the SHA-256 hex digest of a token. Only the digest is
// persisted, so a leaked user document cannot be replayed as a session.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
