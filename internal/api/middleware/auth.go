package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

// UserResolver is the slice of the user store the guard needs to confirm the
// token's subject still exists and is active.
type UserResolver interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth validates the bearer access token, resolves the referenced user, and
// injects the identity into the request context as "user_id" and "role".
// A token whose user has been deleted or deactivated is rejected even when
// the signature is still valid.
func Auth(jwtSecret string, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if typ, _ := claims["type"].(string); typ != "access" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, _ := claims["sub"].(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}
			if !user.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized, "account deactivated")
			}

			c.Set("user_id", user.ID)
			c.Set("role", user.Role)

			return next(c)
		}
	}
}
