package post

import (
	"net/http"

	"Postwall/internal/api/middleware"
	"Postwall/internal/core/posts"
)

// DeleteHandler handles post deletion
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{service: service}
}

// HandleDelete handles DELETE /api/v1/posts/{id}
// Only the author may delete; the removed post is returned
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	id, ok := postID(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.DeleteByID(r.Context(), id, user.Actor())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, deleted)
}
