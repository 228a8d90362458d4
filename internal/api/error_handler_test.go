package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"email taken", domain.ErrEmailTaken, http.StatusConflict},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized},
		{"token revoked", domain.ErrTokenRevoked, http.StatusUnauthorized},
		{"inactive user", domain.ErrUserInactive, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"task not found", domain.ErrTaskNotFound, http.StatusNotFound},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := renderError(t, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if body["success"] != false {
				t.Fatalf("expected success false, got %v", body["success"])
			}
			if body["message"] != tc.err.Error() {
				t.Fatalf("expected message %q, got %v", tc.err.Error(), body["message"])
			}
		})
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	rec, body := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["message"] != "invalid payload" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	rec, body := renderError(t, errors.New("mongo exploded"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	// The real cause stays in the logs.
	if body["message"] != "internal server error" {
		t.Fatalf("expected generic message, got %v", body["message"])
	}
}
