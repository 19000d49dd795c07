package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/logger"
	"taskboard-api/pkg/utils"
)

type ReportHandler struct {
	reportService services.ReportService
	userService   services.UserService
}

func NewReportHandler(reportService services.ReportService, userService services.UserService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		userService:   userService,
	}
}

// ListByTeam returns the team's daily snapshots for a date range. Defaults
// to the last 30 days.
func (h *ReportHandler) ListByTeam(c *fiber.Ctx) error {
	ctx := c.UserContext()

	teamID, err := parseUintParam(c, "teamId")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid team ID")
	}

	now := time.Now().UTC().Truncate(24 * time.Hour)
	from := now.AddDate(0, 0, -30)
	to := now

	if v := c.Query("from"); v != "" {
		from, err = time.Parse("2006-01-02", v)
		if err != nil {
			return utils.BadRequestResponse(c, "Invalid from date, expected YYYY-MM-DD")
		}
	}
	if v := c.Query("to"); v != "" {
		to, err = time.Parse("2006-01-02", v)
		if err != nil {
			return utils.BadRequestResponse(c, "Invalid to date, expected YYYY-MM-DD")
		}
	}
	if to.Before(from) {
		return utils.BadRequestResponse(c, "Date range is inverted")
	}

	actor, err := loadActor(c, h.userService)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	reports, err := h.reportService.ListByTeam(ctx, actor, teamID, from, to)
	if err != nil {
		logger.WarnContext(ctx, "Failed to list reports", "team_id", teamID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	responses := make([]dto.DailyReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, dto.ToDailyReportResponse(r))
	}

	return utils.SuccessResponse(c, responses)
}
