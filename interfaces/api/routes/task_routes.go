package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/interfaces/api/handlers"
	"taskboard-api/interfaces/api/middleware"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers) {
	tasks := api.Group("/tasks", middleware.Protected())

	tasks.Post("/", h.TaskHandler.Create)
	tasks.Get("/:id", h.TaskHandler.Get)
	tasks.Put("/:id", h.TaskHandler.Update)
	tasks.Delete("/:id", h.TaskHandler.Delete)

	tasks.Post("/:id/assign", h.TaskHandler.Assign)
	tasks.Post("/:id/move", h.TaskHandler.Move)
	tasks.Get("/:id/history", h.TaskHandler.History)

	tasks.Post("/:id/archive", h.ArchiveHandler.ArchiveSingle)
	tasks.Delete("/:id/archived", middleware.AdminOnly(), h.ArchiveHandler.PurgeArchived)

	// Review verdict on tasks in a review-stage column
	tasks.Post("/:id/review", h.ReviewHandler.Submit)

	// Approval-gated moves
	tasks.Post("/:id/move-requests", h.MoveRequestHandler.Create)

	// Custom field values
	tasks.Get("/:id/fields", h.CustomFieldHandler.ListValues)
	tasks.Put("/:id/fields/:fieldId", h.CustomFieldHandler.SetValue)
	tasks.Post("/:id/fields/:fieldId/image", h.CustomFieldHandler.UploadImage)
}
