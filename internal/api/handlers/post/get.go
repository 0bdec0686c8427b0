package post

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Postwall/internal/core/posts"
)

// GetHandler serves the read side of the post API
type GetHandler struct {
	service posts.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service posts.Service) *GetHandler {
	return &GetHandler{service: service}
}

// HandleList handles GET /api/v1/posts
func (h *GetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, items)
}

// HandleGet handles GET /api/v1/posts/{id}
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	post, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, post)
}

// HandleRecent handles GET /api/v1/posts/recent/{count}
func (h *GetHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.Atoi(chi.URLParam(r, "count"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "count must be an integer")
		return
	}

	items, err := h.service.GetRecent(r.Context(), count)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, items)
}

// HandleAfter handles GET /api/v1/posts/{id}/after
// Returns posts created strictly after the referenced post, newest first
func (h *GetHandler) HandleAfter(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	items, err := h.service.GetPostsAfter(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, items)
}

// HandleBefore handles POST /api/v1/posts/before
// The reference and page size travel in the body so older clients keep working
func (h *GetHandler) HandleBefore(w http.ResponseWriter, r *http.Request) {
	var req posts.PostsCreatedBeforeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	items, err := h.service.GetPostsCreatedBefore(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, items)
}
