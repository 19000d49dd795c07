package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/logger"
	"taskboard-api/pkg/utils"
)

type BoardHandler struct {
	boardService services.BoardService
	userService  services.UserService
}

func NewBoardHandler(boardService services.BoardService, userService services.UserService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
		userService:  userService,
	}
}

// GetBoard returns the full board read model for a team
func (h *BoardHandler) GetBoard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	teamID, err := parseUintParam(c, "teamId")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid team ID")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	board, err := h.boardService.GetBoard(ctx, actor, teamID)
	if err != nil {
		logger.WarnContext(ctx, "Failed to load board", "team_id", teamID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, board)
}

// CreateColumn appends a column at the end of the board
func (h *BoardHandler) CreateColumn(c *fiber.Ctx) error {
	ctx := c.UserContext()

	teamID, err := parseUintParam(c, "teamId")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid team ID")
	}

	var req dto.CreateColumnRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		return utils.ValidationErrorResponse(c, errors)
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	column, err := h.boardService.CreateColumn(ctx, actor, teamID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Column creation failed", "team_id", teamID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Column created", "column_id", column.ID, "team_id", teamID)
	return utils.CreatedResponse(c, dto.ToColumnResponse(column))
}

// RenameColumn renames a column without touching its stage or position
func (h *BoardHandler) RenameColumn(c *fiber.Ctx) error {
	ctx := c.UserContext()

	columnID, err := parseUintParam(c, "columnId")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid column ID")
	}

	var req dto.UpdateColumnRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		return utils.ValidationErrorResponse(c, errors)
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	column, err := h.boardService.RenameColumn(ctx, actor, columnID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Column rename failed", "column_id", columnID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Column renamed", "column_id", columnID)
	return utils.SuccessResponse(c, dto.ToColumnResponse(column))
}

// ReorderColumns replaces the board's column order with the exact given set
func (h *BoardHandler) ReorderColumns(c *fiber.Ctx) error {
	ctx := c.UserContext()

	teamID, err := parseUintParam(c, "teamId")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid team ID")
	}

	var req dto.ReorderColumnsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		return utils.ValidationErrorResponse(c, errors)
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	columns, err := h.boardService.ReorderColumns(ctx, actor, teamID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Column reorder failed", "team_id", teamID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	responses := make([]dto.ColumnResponse, 0, len(columns))
	for _, col := range columns {
		responses = append(responses, dto.ToColumnResponse(col))
	}

	logger.InfoContext(ctx, "Columns reordered", "team_id", teamID)
	return utils.SuccessResponse(c, responses)
}

// DeleteColumn removes an empty column
func (h *BoardHandler) DeleteColumn(c *fiber.Ctx) error {
	ctx := c.UserContext()

	columnID, err := parseUintParam(c, "columnId")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid column ID")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	if err := h.boardService.DeleteColumn(ctx, actor, columnID); err != nil {
		logger.WarnContext(ctx, "Column delete failed", "column_id", columnID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Column deleted", "column_id", columnID)
	return utils.NoContentResponse(c)
}
