package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/api/metrics"
	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

// AuthHandler handles the registration, login and token lifecycle endpoints.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account and returns the initial token pair.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, tokens, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	profile := user.Public()
	return c.JSON(http.StatusCreated, authResponse{Success: true, User: &profile, Tokens: tokens})
}

// Login authenticates a user and returns a fresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, tokens, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	profile := user.Public()
	return c.JSON(http.StatusOK, authResponse{Success: true, User: &profile, Tokens: tokens})
}

// Refresh rotates the refresh token and returns a new pair.
//
// @Summary      Refresh the token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Current refresh token"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenRevoked):
			metrics.TokenRefreshesTotal.WithLabelValues("revoked").Inc()
		default:
			metrics.TokenRefreshesTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Success: true, Tokens: tokens})
}

// Logout revokes the caller's refresh token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), who.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "logged out"})
}

// Me returns the caller's public profile.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	user, err := h.authService.CurrentUser(c.Request().Context(), who.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{Success: true, User: user.Public()})
}

// UpdateMe updates the caller's name and/or email.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/me [put]
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == nil && req.Email == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), who.UserID, ports.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{Success: true, User: user.Public()})
}

// ChangePassword verifies the current password and stores a new hash.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ChangePassword(c.Request().Context(), who.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "password changed"})
}
