package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/interfaces/api/handlers"
	"taskboard-api/interfaces/api/middleware"
)

func SetupCustomFieldRoutes(api fiber.Router, h *handlers.Handlers) {
	fields := api.Group("/fields", middleware.Protected())

	fields.Post("/", h.CustomFieldHandler.Create)
	fields.Put("/:id", h.CustomFieldHandler.Update)
	fields.Delete("/:id", h.CustomFieldHandler.Deactivate)
}
