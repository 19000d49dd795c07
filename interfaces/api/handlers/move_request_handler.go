package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/logger"
	"taskboard-api/pkg/utils"
)

type MoveRequestHandler struct {
	moveRequestService services.MoveRequestService
	userService        services.UserService
}

func NewMoveRequestHandler(moveRequestService services.MoveRequestService, userService services.UserService) *MoveRequestHandler {
	return &MoveRequestHandler{
		moveRequestService: moveRequestService,
		userService:        userService,
	}
}

// Create files a move request for a transition the actor cannot perform
// directly
func (h *MoveRequestHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.CreateMoveRequestRequest
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

	request, err := h.moveRequestService.Create(ctx, actor, taskID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Move request creation failed", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Move request created", "request_id", request.ID, "task_id", taskID)
	return utils.CreatedResponse(c, dto.ToMoveRequestResponse(request))
}

// Handle approves or rejects a pending request, exactly once
func (h *MoveRequestHandler) Handle(c *fiber.Ctx) error {
	ctx := c.UserContext()

	requestID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request ID")
	}

	var req dto.HandleMoveRequestRequest
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

	request, err := h.moveRequestService.Handle(ctx, actor, requestID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Move request handling failed", "request_id", requestID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Move request handled",
		"request_id", requestID,
		"status", request.Status,
		"handled_by", actor.ID,
	)
	return utils.SuccessResponse(c, dto.ToMoveRequestResponse(request))
}

// ListPending returns the team's open requests for the managers' queue
func (h *MoveRequestHandler) ListPending(c *fiber.Ctx) error {
	ctx := c.UserContext()

	teamID, err := parseUintParam(c, "teamId")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid team ID")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	requests, err := h.moveRequestService.ListPending(ctx, actor, teamID)
	if err != nil {
		logger.WarnContext(ctx, "Failed to list move requests", "team_id", teamID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ToMoveRequestResponses(requests))
}
