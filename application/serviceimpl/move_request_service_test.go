package serviceimpl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/pkg/apperror"
)

func TestMoveRequestCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.reviewCo)

	// member cannot move review -> complete directly, so a request is valid
	request, err := f.moveRequest.Create(ctx, f.member, task.ID, &dto.CreateMoveRequestRequest{ToColumnID: f.complete.ID})
	require.NoError(t, err)

	assert.Equal(t, models.MoveRequestPending, request.Status)
	assert.Equal(t, f.reviewCo.ID, request.FromColumnID)
	assert.Equal(t, f.complete.ID, request.ToColumnID)
	assert.Equal(t, "Review", request.FromColumnName)
	assert.Equal(t, "Complete", request.ToColumnName)
	assert.Equal(t, f.member.ID, request.RequestedBy)
}

func TestMoveRequestCreateRejectedWhenDirectMovePossible(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.todo)

	_, err := f.moveRequest.Create(ctx, f.member, task.ID, &dto.CreateMoveRequestRequest{ToColumnID: f.doing.ID})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestMoveRequestCreateRejectsCurrentColumn(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.reviewCo)

	_, err := f.moveRequest.Create(ctx, f.member, task.ID, &dto.CreateMoveRequestRequest{ToColumnID: f.reviewCo.ID})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidationFailed))
}

func TestMoveRequestApprove(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.reviewCo)

	request, err := f.moveRequest.Create(ctx, f.member, task.ID, &dto.CreateMoveRequestRequest{ToColumnID: f.complete.ID})
	require.NoError(t, err)

	handled, err := f.moveRequest.Handle(ctx, f.manager, request.ID, &dto.HandleMoveRequestRequest{Approved: boolPtr(true), Reply: "ok"})
	require.NoError(t, err)

	assert.Equal(t, models.MoveRequestApproved, handled.Status)
	require.NotNil(t, handled.HandledBy)
	assert.Equal(t, f.manager.ID, *handled.HandledBy)
	assert.NotNil(t, handled.HandledAt)

	moved, _ := f.tasks.GetByID(ctx, task.ID)
	assert.Equal(t, f.complete.ID, moved.ColumnID)

	// the approver is the actor on the resulting history event
	events := f.tasks.eventsOfType(models.ChangeColumnMoved)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].ActorID)
	assert.Equal(t, f.manager.ID, *events[0].ActorID)
}

func TestMoveRequestReject(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.reviewCo)

	request, err := f.moveRequest.Create(ctx, f.member, task.ID, &dto.CreateMoveRequestRequest{ToColumnID: f.complete.ID})
	require.NoError(t, err)

	handled, err := f.moveRequest.Handle(ctx, f.manager, request.ID, &dto.HandleMoveRequestRequest{Approved: boolPtr(false), Reply: "not yet"})
	require.NoError(t, err)

	assert.Equal(t, models.MoveRequestRejected, handled.Status)
	assert.Equal(t, "not yet", handled.AdminReply)

	// task stays put
	stored, _ := f.tasks.GetByID(ctx, task.ID)
	assert.Equal(t, f.reviewCo.ID, stored.ColumnID)
}

func TestMoveRequestHandledExactlyOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.reviewCo)

	request, err := f.moveRequest.Create(ctx, f.member, task.ID, &dto.CreateMoveRequestRequest{ToColumnID: f.complete.ID})
	require.NoError(t, err)

	_, err = f.moveRequest.Handle(ctx, f.manager, request.ID, &dto.HandleMoveRequestRequest{Approved: boolPtr(false)})
	require.NoError(t, err)

	_, err = f.moveRequest.Handle(ctx, f.manager, request.ID, &dto.HandleMoveRequestRequest{Approved: boolPtr(true)})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestMoveRequestHandleRequiresManageBoard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.reviewCo)

	request, err := f.moveRequest.Create(ctx, f.member, task.ID, &dto.CreateMoveRequestRequest{ToColumnID: f.complete.ID})
	require.NoError(t, err)

	_, err = f.moveRequest.Handle(ctx, f.member, request.ID, &dto.HandleMoveRequestRequest{Approved: boolPtr(true)})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestMoveRequestStaysPendingWhenMoveFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.reviewCo)

	request, err := f.moveRequest.Create(ctx, f.member, task.ID, &dto.CreateMoveRequestRequest{ToColumnID: f.complete.ID})
	require.NoError(t, err)

	// the task moves on before the request is handled
	_, err = f.transition.Move(ctx, f.manager, task.ID, f.complete.ID)
	require.NoError(t, err)

	_, err = f.moveRequest.Handle(ctx, f.manager, request.ID, &dto.HandleMoveRequestRequest{Approved: boolPtr(true)})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))

	stored, _ := f.moves.GetByID(ctx, request.ID)
	assert.Equal(t, models.MoveRequestPending, stored.Status)
}

func TestMoveRequestListPending(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.reviewCo)

	_, err := f.moveRequest.Create(ctx, f.member, task.ID, &dto.CreateMoveRequestRequest{ToColumnID: f.complete.ID})
	require.NoError(t, err)

	pending, err := f.moveRequest.ListPending(ctx, f.manager, f.team.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = f.moveRequest.ListPending(ctx, f.member, f.team.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}
