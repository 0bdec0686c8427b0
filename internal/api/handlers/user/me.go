package user

import (
	"net/http"

	"Postwall/internal/api/middleware"
	"Postwall/internal/core/users"
)

// MeHandler serves the authenticated account
type MeHandler struct {
	userService users.UserService
}

// NewMeHandler creates a new me handler
func NewMeHandler(userService users.UserService) *MeHandler {
	return &MeHandler{
		userService: userService,
	}
}

// HandleMe handles GET /api/v1/me
func (h *MeHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	writeJSON(w, http.StatusOK, user.Response())
}

// HandleChangePassword handles PUT /api/v1/me/password
// Existing tokens stay valid until they expire
func (h *MeHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var req users.ChangePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.userService.ChangePassword(r.Context(), user.ID, req); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
