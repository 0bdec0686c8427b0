package routes

import (
	"github.com/go-chi/chi/v5"

	"Postwall/internal/api/handlers/user"
	"Postwall/internal/api/middleware"
	"Postwall/internal/core/users"
)

// RegisterUserRoutes registers account endpoints on r.
// Registration and authentication are public; /me requires a token.
func RegisterUserRoutes(r chi.Router, service users.UserService, authMiddleware *middleware.AuthMiddleware) {
	accountHandler := user.NewAccountHandler(service)
	meHandler := user.NewMeHandler(service)

	r.Post("/registration", accountHandler.HandleRegister)
	r.Post("/authentication", accountHandler.HandleAuthenticate)

	r.With(authMiddleware.RequireAuth).Get("/me", meHandler.HandleMe)
	r.With(authMiddleware.RequireAuth).Put("/me/password", meHandler.HandleChangePassword)
}
