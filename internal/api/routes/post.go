package routes

import (
	"github.com/go-chi/chi/v5"

	"Postwall/internal/api/handlers/post"
	"Postwall/internal/api/middleware"
	"Postwall/internal/core/posts"
)

// RegisterPostRoutes registers the post endpoints under /posts on r.
// Every post endpoint requires authentication.
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware *middleware.AuthMiddleware) {
	// Initialize handlers
	getHandler := post.NewGetHandler(service)
	saveHandler := post.NewSaveHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	engageHandler := post.NewEngageHandler(service)

	r.Route("/posts", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Get("/", getHandler.HandleList)
		r.Post("/", saveHandler.HandleSave)

		// static segments are matched before {id}
		r.Get("/recent/{count}", getHandler.HandleRecent)
		r.Post("/before", getHandler.HandleBefore)

		r.Get("/{id}", getHandler.HandleGet)
		r.Delete("/{id}", deleteHandler.HandleDelete)
		r.Get("/{id}/after", getHandler.HandleAfter)
		r.Post("/{id}/likes", engageHandler.HandleLike)
		r.Delete("/{id}/likes", engageHandler.HandleDislike)
		r.Post("/{id}/reposts", engageHandler.HandleRepost)
	})
}
