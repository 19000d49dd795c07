package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/interfaces/api/handlers"
	"taskboard-api/interfaces/api/middleware"
)

func SetupMoveRequestRoutes(api fiber.Router, h *handlers.Handlers) {
	requests := api.Group("/move-requests", middleware.Protected())

	requests.Put("/:id", h.MoveRequestHandler.Handle)
}
