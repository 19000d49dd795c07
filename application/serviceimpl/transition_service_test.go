package serviceimpl_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/domain/models"
	"taskboard-api/domain/ports"
	"taskboard-api/pkg/apperror"
)

func TestMoveRecordsDwellTime(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.todo)

	moved, err := f.transition.Move(ctx, f.member, task.ID, f.doing.ID)
	require.NoError(t, err)

	assert.Equal(t, f.doing.ID, moved.ColumnID)
	assert.Equal(t, models.StageDoing, moved.Status)

	events := f.tasks.eventsOfType(models.ChangeColumnMoved)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].TimeSpentSeconds)
	// the fixture seeds entry time one hour in the past
	assert.InDelta(t, 3600, float64(*events[0].TimeSpentSeconds), 5)
	assert.Equal(t, f.todo.ID, *events[0].FromColumnID)
	assert.Equal(t, f.doing.ID, *events[0].ToColumnID)
}

func TestMoveEmitsStatusChangeOnStageBoundary(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.todo)

	_, err := f.transition.Move(ctx, f.member, task.ID, f.doing.ID)
	require.NoError(t, err)

	statusEvents := f.tasks.eventsOfType(models.ChangeStatusChanged)
	require.Len(t, statusEvents, 1)
	assert.Equal(t, "todo", *statusEvents[0].OldValue)
	assert.Equal(t, "doing", *statusEvents[0].NewValue)
}

func TestMoveSameColumnRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.todo)

	_, err := f.transition.Move(ctx, f.admin, task.ID, f.todo.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
}

func TestMoveForbiddenWithoutTransitionRight(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.reviewCo)

	_, err := f.transition.Move(ctx, f.member, task.ID, f.complete.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	// nothing moved, nothing recorded
	stored, _ := f.tasks.GetByID(ctx, task.ID)
	assert.Equal(t, f.reviewCo.ID, stored.ColumnID)
	assert.Empty(t, f.tasks.eventsOfType(models.ChangeColumnMoved))
}

func TestMoveTerminalTaskRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	archived := f.seedTask(f.complete, func(task *models.Task) {
		task.IsArchived = true
	})
	_, err := f.transition.Move(ctx, f.admin, archived.ID, f.todo.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))

	donePassed := f.seedTask(f.complete, func(task *models.Task) {
		task.ReviewStatus = models.ReviewPassed
	})
	_, err = f.transition.Move(ctx, f.admin, donePassed.ID, f.todo.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
}

func TestMoveIntoReviewTracksRollbackTarget(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.doing)

	moved, err := f.transition.Move(ctx, f.member, task.ID, f.reviewCo.ID)
	require.NoError(t, err)

	require.NotNil(t, moved.PreviousColumnID)
	assert.Equal(t, f.doing.ID, *moved.PreviousColumnID)
	assert.Equal(t, models.ReviewNone, moved.ReviewStatus)
}

func TestMoveIntoCompleteStampsCompletion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.reviewCo)

	before := time.Now().UTC()
	moved, err := f.transition.Move(ctx, f.manager, task.ID, f.complete.ID)
	require.NoError(t, err)

	require.NotNil(t, moved.CompletedAt)
	assert.False(t, moved.CompletedAt.Before(before))
	require.NotNil(t, moved.CompletedBy)
	assert.Equal(t, f.manager.ID, *moved.CompletedBy)
	assert.Nil(t, moved.PreviousColumnID, "leaving review clears the rollback target")
}

func TestMovePublishesBoardEvent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.todo)

	_, err := f.transition.Move(ctx, f.member, task.ID, f.doing.ID)
	require.NoError(t, err)

	published := f.publisher.ofType(ports.EventTaskMoved)
	require.Len(t, published, 1)
	assert.Equal(t, f.team.Slug, published[0].TeamSlug)
	assert.Equal(t, task.ID, published[0].TaskID)
}

func TestApplyRejectsCrossTeamColumn(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.todo)

	foreign := &models.BoardColumn{TeamID: f.team.ID + 1, Name: "Elsewhere", Stage: models.StageDoing}
	require.NoError(t, f.columns.Create(ctx, foreign))

	err := f.transition.Apply(ctx, f.admin, task, foreign)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
}
