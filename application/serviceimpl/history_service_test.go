package serviceimpl_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/domain/models"
	"taskboard-api/pkg/apperror"
)

func TestHistoryListsNewestFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.todo)

	_, err := f.transition.Move(ctx, f.member, task.ID, f.doing.ID)
	require.NoError(t, err)
	_, err = f.transition.Move(ctx, f.member, task.ID, f.reviewCo.ID)
	require.NoError(t, err)

	events, err := f.history.ListByTask(ctx, f.member, task.ID)
	require.NoError(t, err)
	require.NotEmpty(t, events)

	// newest first: entering review opened a round, creation closes the list
	assert.Equal(t, models.ChangeReviewSubmitted, events[0].ChangeType)
	assert.Equal(t, models.ChangeCreated, events[len(events)-1].ChangeType)

	var lastMove *models.HistoryEvent
	for _, e := range events {
		if e.ChangeType == models.ChangeColumnMoved {
			lastMove = e
			break
		}
	}
	require.NotNil(t, lastMove)
	assert.Equal(t, f.reviewCo.ID, *lastMove.ToColumnID)
}

func TestHistoryDeniedToOutsiders(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task := f.seedTask(f.todo)

	outsider := &models.User{ID: uuid.New(), Username: "outsider", Role: models.RoleUser, IsActive: true}
	require.NoError(t, f.users.Create(ctx, outsider))

	_, err := f.history.ListByTask(ctx, outsider, task.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}
