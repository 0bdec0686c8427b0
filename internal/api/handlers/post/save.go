package post

import (
	"net/http"

	"Postwall/internal/api/middleware"
	"Postwall/internal/core/posts"
)

// SaveHandler handles post creation and replacement
type SaveHandler struct {
	service posts.Service
}

// NewSaveHandler creates a new save handler
func NewSaveHandler(service posts.Service) *SaveHandler {
	return &SaveHandler{service: service}
}

// HandleSave handles POST /api/v1/posts
// id -1 creates a post, any other id replaces it
func (h *SaveHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var req posts.PostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Type != "" && !req.Type.Valid() {
		handleServiceError(w, posts.NewValidationError("type", "unknown post type "+string(req.Type)))
		return
	}

	saved, err := h.service.Save(r.Context(), req, user.Actor())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, saved)
}
