package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"taskboard-api/domain/models"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/config"
	"taskboard-api/pkg/utils"
)

// Services contains all the services needed for handlers
type Services struct {
	UserService        services.UserService
	TeamService        services.TeamService
	BoardService       services.BoardService
	TaskService        services.TaskService
	TransitionService  services.TransitionService
	ReviewService      services.ReviewService
	MoveRequestService services.MoveRequestService
	PermissionService  services.PermissionService
	HistoryService     services.HistoryService
	ArchiveService     services.ArchiveService
	CustomFieldService services.CustomFieldService
	ReportService      services.ReportService
	Config             *config.Config
}

// Handlers contains all HTTP handlers
type Handlers struct {
	AuthHandler        *AuthHandler
	UserHandler        *UserHandler
	TeamHandler        *TeamHandler
	BoardHandler       *BoardHandler
	TaskHandler        *TaskHandler
	ReviewHandler      *ReviewHandler
	MoveRequestHandler *MoveRequestHandler
	PermissionHandler  *PermissionHandler
	ArchiveHandler     *ArchiveHandler
	CustomFieldHandler *CustomFieldHandler
	ReportHandler      *ReportHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler:        NewAuthHandler(services.UserService),
		UserHandler:        NewUserHandler(services.UserService),
		TeamHandler:        NewTeamHandler(services.TeamService, services.UserService),
		BoardHandler:       NewBoardHandler(services.BoardService, services.UserService),
		TaskHandler:        NewTaskHandler(services.TaskService, services.HistoryService, services.UserService),
		ReviewHandler:      NewReviewHandler(services.ReviewService, services.UserService),
		MoveRequestHandler: NewMoveRequestHandler(services.MoveRequestService, services.UserService),
		PermissionHandler:  NewPermissionHandler(services.PermissionService),
		ArchiveHandler:     NewArchiveHandler(services.ArchiveService, services.UserService),
		CustomFieldHandler: NewCustomFieldHandler(services.CustomFieldService, services.UserService, services.Config.Storage.MaxUploadSize),
		ReportHandler:      NewReportHandler(services.ReportService, services.UserService),
	}
}

// loadActor resolves the authenticated user record from the JWT context.
// Handlers pass the full user to services so role and team membership are
// always current, not whatever the token was minted with.
func loadActor(c *fiber.Ctx, users services.UserService) (*models.User, error) {
	userCtx, err := utils.GetUserFromContext(c)
	if err != nil {
		return nil, err
	}
	return users.Get(c.UserContext(), userCtx.ID)
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
