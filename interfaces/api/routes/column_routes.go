package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/interfaces/api/handlers"
	"taskboard-api/interfaces/api/middleware"
)

func SetupColumnRoutes(api fiber.Router, h *handlers.Handlers) {
	columns := api.Group("/columns", middleware.Protected())

	columns.Put("/:columnId", h.BoardHandler.RenameColumn)
	columns.Delete("/:columnId", h.BoardHandler.DeleteColumn)
}
