package services

import (
	"context"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
)

// MoveRequestService brokers approval-gated moves for users without direct
// transition rights. Handling is idempotent-hostile on purpose: a request can
// be handled exactly once.
type MoveRequestService interface {
	Create(ctx context.Context, actor *models.User, taskID uint, req *dto.CreateMoveRequestRequest) (*models.MoveRequest, error)
	// Handle approves or rejects a pending request. Approval performs the
	// move with the approver as actor; if the move fails the request stays
	// pending.
	Handle(ctx context.Context, actor *models.User, requestID uint, req *dto.HandleMoveRequestRequest) (*models.MoveRequest, error)
	ListPending(ctx context.Context, actor *models.User, teamID uint) ([]*models.MoveRequest, error)
}
