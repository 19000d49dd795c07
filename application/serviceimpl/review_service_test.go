package serviceimpl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/pkg/apperror"
	"taskboard-api/pkg/config"
)

func submitForReview(t *testing.T, f *fixture) *models.Task {
	t.Helper()
	ctx := context.Background()
	task := f.seedTask(f.doing)
	moved, err := f.transition.Move(ctx, f.member, task.ID, f.reviewCo.ID)
	require.NoError(t, err)
	return moved
}

func TestReviewPassMovesToComplete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := submitForReview(t, f)

	resp, err := f.review.Review(ctx, f.manager, task.ID, &dto.SubmitReviewRequest{Passed: boolPtr(true), Note: "looks good"})
	require.NoError(t, err)

	assert.True(t, resp.Passed)
	assert.Equal(t, f.complete.ID, resp.Task.ColumnID)
	assert.Equal(t, "complete", resp.Task.Status)
	assert.Equal(t, "passed", resp.Task.ReviewStatus)
	require.NotNil(t, resp.Task.ReviewedBy)
	assert.Equal(t, f.manager.ID, *resp.Task.ReviewedBy)

	// the task is now terminal: no further moves
	_, err = f.transition.Move(ctx, f.admin, task.ID, f.todo.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))

	passedEvents := f.tasks.eventsOfType(models.ChangeReviewPassed)
	require.Len(t, passedEvents, 1)
	assert.Equal(t, "looks good", passedEvents[0].Details)
}

func TestReviewFailRollsBackToOrigin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := submitForReview(t, f)

	resp, err := f.review.Review(ctx, f.manager, task.ID, &dto.SubmitReviewRequest{Passed: boolPtr(false), Note: "tests missing"})
	require.NoError(t, err)

	assert.False(t, resp.Passed)
	assert.Equal(t, f.doing.ID, resp.Task.ColumnID, "fail returns the task to the column it came from")
	assert.Equal(t, "doing", resp.Task.Status)
	assert.Equal(t, "failed", resp.Task.ReviewStatus)
	assert.Equal(t, "tests missing", resp.Task.ReviewNote)

	failedEvents := f.tasks.eventsOfType(models.ChangeReviewFailed)
	require.Len(t, failedEvents, 1)
	assert.Equal(t, f.reviewCo.ID, *failedEvents[0].FromColumnID)
	assert.Equal(t, f.doing.ID, *failedEvents[0].ToColumnID)
}

func TestReviewFailRequiresNote(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := submitForReview(t, f)

	_, err := f.review.Review(ctx, f.manager, task.ID, &dto.SubmitReviewRequest{Passed: boolPtr(false), Note: "   "})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidationFailed))

	// untouched
	stored, _ := f.tasks.GetByID(ctx, task.ID)
	assert.Equal(t, f.reviewCo.ID, stored.ColumnID)
	assert.Equal(t, models.ReviewNone, stored.ReviewStatus)
}

func TestReviewRequiresReviewCapability(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := submitForReview(t, f)

	_, err := f.review.Review(ctx, f.member, task.ID, &dto.SubmitReviewRequest{Passed: boolPtr(true)})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestReviewOutsideReviewStageRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.doing)

	_, err := f.review.Review(ctx, f.manager, task.ID, &dto.SubmitReviewRequest{Passed: boolPtr(true)})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestReviewFailFullCycleThenPass(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := submitForReview(t, f)

	// fail rolls back to doing
	_, err := f.review.Review(ctx, f.manager, task.ID, &dto.SubmitReviewRequest{Passed: boolPtr(false), Note: "redo"})
	require.NoError(t, err)

	// the member resubmits, which opens a fresh review round
	moved, err := f.transition.Move(ctx, f.member, task.ID, f.reviewCo.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewNone, moved.ReviewStatus)
	assert.Empty(t, moved.ReviewNote)

	resp, err := f.review.Review(ctx, f.manager, task.ID, &dto.SubmitReviewRequest{Passed: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "passed", resp.Task.ReviewStatus)
	assert.Equal(t, f.complete.ID, resp.Task.ColumnID)
}

func TestReviewFailCycleLimit(t *testing.T) {
	f := newFixtureWithReview(config.ReviewConfig{MaxFailCycles: 2, FailCycleHours: 24})
	ctx := context.Background()
	task := submitForReview(t, f)

	for i := 0; i < 2; i++ {
		_, err := f.review.Review(ctx, f.manager, task.ID, &dto.SubmitReviewRequest{Passed: boolPtr(false), Note: "again"})
		require.NoError(t, err)
		_, err = f.transition.Move(ctx, f.member, task.ID, f.reviewCo.ID)
		require.NoError(t, err)
	}

	_, err := f.review.Review(ctx, f.manager, task.ID, &dto.SubmitReviewRequest{Passed: boolPtr(false), Note: "again"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	// passing still works and resets the counter
	resp, err := f.review.Review(ctx, f.manager, task.ID, &dto.SubmitReviewRequest{Passed: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, resp.Passed)
}
