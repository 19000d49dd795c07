package services

import (
	"context"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
)

// ReviewService handles the verdict on tasks sitting in a review-stage
// column. Pass moves the task to the team's Complete column; fail requires a
// note and rolls the task back to the column it came from.
type ReviewService interface {
	Review(ctx context.Context, actor *models.User, taskID uint, req *dto.SubmitReviewRequest) (*dto.ReviewResponse, error)
}
