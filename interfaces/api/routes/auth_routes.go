package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/interfaces/api/handlers"
	"taskboard-api/interfaces/api/middleware"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers) {
	auth := api.Group("/auth")

	auth.Post("/register", h.AuthHandler.Register)
	auth.Post("/login", h.AuthHandler.Login)

	auth.Get("/me", middleware.Protected(), h.AuthHandler.Me)
}
