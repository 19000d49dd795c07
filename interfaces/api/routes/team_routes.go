package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/interfaces/api/handlers"
	"taskboard-api/interfaces/api/middleware"
)

func SetupTeamRoutes(api fiber.Router, h *handlers.Handlers) {
	teams := api.Group("/teams", middleware.Protected())

	teams.Post("/", middleware.AdminOnly(), h.TeamHandler.Create)
	teams.Get("/", h.TeamHandler.List)
	teams.Get("/:id", h.TeamHandler.Get)
	teams.Put("/:id", h.TeamHandler.Update)

	teams.Get("/:teamId/members", h.UserHandler.ListByTeam)

	// Board layout
	teams.Get("/:teamId/board", h.BoardHandler.GetBoard)
	teams.Post("/:teamId/columns", h.BoardHandler.CreateColumn)
	teams.Put("/:teamId/columns/reorder", h.BoardHandler.ReorderColumns)

	// Permissions
	teams.Get("/:teamId/permissions", h.PermissionHandler.GetTeamPermissions)
	teams.Put("/:teamId/permissions", h.PermissionHandler.UpdatePermissions)

	// Move request queue
	teams.Get("/:teamId/move-requests", h.MoveRequestHandler.ListPending)

	// Archive partition
	teams.Post("/:teamId/archive", h.ArchiveHandler.ArchiveCompleted)
	teams.Get("/:teamId/archive", h.ArchiveHandler.ListArchived)

	// Custom fields visible to the team
	teams.Get("/:teamId/fields", h.CustomFieldHandler.ListForTeam)

	// Daily report history
	teams.Get("/:teamId/reports", h.ReportHandler.ListByTeam)
}
