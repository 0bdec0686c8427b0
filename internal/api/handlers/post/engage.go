package post

import (
	"net/http"

	"Postwall/internal/api/middleware"
	"Postwall/internal/core/posts"
)

// EngageHandler handles likes and reposts
type EngageHandler struct {
	service posts.Service
}

// NewEngageHandler creates a new engagement handler
func NewEngageHandler(service posts.Service) *EngageHandler {
	return &EngageHandler{service: service}
}

// HandleLike handles POST /api/v1/posts/{id}/likes
func (h *EngageHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	post, err := h.service.LikeByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, post)
}

// HandleDislike handles DELETE /api/v1/posts/{id}/likes
func (h *EngageHandler) HandleDislike(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	post, err := h.service.DislikeByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, post)
}

// HandleRepost handles POST /api/v1/posts/{id}/reposts
// An empty body reposts without commentary
func (h *EngageHandler) HandleRepost(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	id, ok := postID(w, r)
	if !ok {
		return
	}

	var req posts.RepostRequest
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}

	repost, err := h.service.RepostByID(r.Context(), id, user.Actor(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, repost)
}
