package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/interfaces/api/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers) {
	SetupHealthRoutes(app)

	api := app.Group("/api/v1")

	SetupAuthRoutes(api, h)
	SetupUserRoutes(api, h)
	SetupTeamRoutes(api, h)
	SetupColumnRoutes(api, h)
	SetupTaskRoutes(api, h)
	SetupMoveRequestRoutes(api, h)
	SetupCustomFieldRoutes(api, h)

	// WebSocket lives outside the api group
	SetupWebSocketRoutes(app)
}
