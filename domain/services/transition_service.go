package services

import (
	"context"

	"taskboard-api/domain/models"
)

// TransitionService is the single write path for column moves. Every move,
// whether direct, via an approved move request, or a review verdict, funnels
// through it so the invariants hold everywhere: terminal tasks reject moves,
// same-column moves are invalid, the task status tracks the destination
// stage, and the move plus its history event commit atomically.
type TransitionService interface {
	// Move performs a permission-checked transition and returns the updated
	// task. Entering a review-stage column records the origin column for a
	// later fail rollback and marks the review pending.
	Move(ctx context.Context, actor *models.User, taskID, toColumnID uint) (*models.Task, error)

	// Apply performs the transition without a permission check, for callers
	// that carry their own authorization (review rollback, approved move
	// requests). The same state invariants still apply.
	Apply(ctx context.Context, actor *models.User, task *models.Task, dest *models.BoardColumn, extra ...*models.HistoryEvent) error
}
