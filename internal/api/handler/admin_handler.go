package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

// AdminHandler exposes the admin-only account endpoints. Routes using it are
// wrapped with RBAC(RoleAdmin) in the router.
type AdminHandler struct {
	authService ports.AuthService
}

func NewAdminHandler(authService ports.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List user accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page (1-based)"
// @Param        limit  query  int  false  "Page size (max 100)"
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	// Mirror the service-side defaults so the echoed pagination matches
	// what was actually queried.
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	users, total, err := h.authService.ListUsers(c.Request().Context(), ports.ListUsersFilter{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return err
	}

	profiles := make([]domain.PublicProfile, len(users))
	for i, u := range users {
		profiles[i] = u.Public()
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return c.JSON(http.StatusOK, listUsersResponse{
		Success: true,
		Data:    profiles,
		Pagination: paginationResponse{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: pages,
		},
	})
}
