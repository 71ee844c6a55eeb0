package handler

import (
	"net/http"

	"github.com/jumpigames/newsletter/internal/api/apierr"
	"github.com/jumpigames/newsletter/internal/api/request"
	"github.com/jumpigames/newsletter/internal/api/response"
	"github.com/jumpigames/newsletter/internal/services/auth"
)

// AdminHandler handles admin session endpoints
type AdminHandler struct {
	authService *auth.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authService *auth.Service) *AdminHandler {
	return &AdminHandler{
		authService: authService,
	}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		apierr.WriteError(w, r, apierr.NewInvalidRequestError())
		return
	}

	code, ok := req.Code.Value()
	if !ok {
		writeError(w, r, auth.ErrInvalidCode, msgLoginFailed)
		return
	}

	if err := h.authService.Login(r.Context(), code); err != nil {
		writeError(w, r, err, msgLoginFailed)
		return
	}

	response.JSON(w, http.StatusOK, response.OK("אימות הצליח"))
}

// CheckAuth handles GET /api/admin/check-auth
func (h *AdminHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.AuthStatus{
		Authenticated: h.authService.IsAuthenticated(r.Context()),
	})
}

// Logout handles POST /api/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context()); err != nil {
		writeError(w, r, err, msgLogoutFailed)
		return
	}

	response.JSON(w, http.StatusOK, response.OK("יצאת בהצלחה"))
}
