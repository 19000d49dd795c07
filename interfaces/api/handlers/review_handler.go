package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/logger"
	"taskboard-api/pkg/utils"
)

type ReviewHandler struct {
	reviewService services.ReviewService
	userService   services.UserService
}

func NewReviewHandler(reviewService services.ReviewService, userService services.UserService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		userService:   userService,
	}
}

// Submit records a review verdict. Pass moves the task to the complete
// column; fail needs a note and rolls back to the origin column.
func (h *ReviewHandler) Submit(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.SubmitReviewRequest
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

	result, err := h.reviewService.Review(ctx, actor, taskID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Review failed", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Review submitted", "task_id", taskID, "passed", result.Passed, "reviewer", actor.ID)
	return utils.SuccessResponse(c, result)
}
