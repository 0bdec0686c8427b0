package user

import (
	"net/http"

	"Postwall/internal/core/users"
)

// AccountHandler handles registration and login
type AccountHandler struct {
	userService users.UserService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(userService users.UserService) *AccountHandler {
	return &AccountHandler{
		userService: userService,
	}
}

// HandleRegister handles POST /api/v1/registration
// Creates an account and returns a bearer token for it
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req users.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.userService.Register(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleAuthenticate handles POST /api/v1/authentication
func (h *AccountHandler) HandleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req users.AuthenticateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.userService.Authenticate(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
