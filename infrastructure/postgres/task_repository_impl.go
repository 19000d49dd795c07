package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/pkg/apperror"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task, event *models.HistoryEvent) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		event.TaskID = task.ID
		return tx.Create(event).Error
	})
	if err != nil {
		return apperror.Persistence("failed to create task", err)
	}
	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, wrapErr(err, "task not found")
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) ListBoard(ctx context.Context, teamID uint) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND is_archived = ?", teamID, false).
		Order("id").
		Find(&tasks).Error
	if err != nil {
		return nil, apperror.Persistence("failed to list board tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepositoryImpl) ListArchived(ctx context.Context, teamID uint) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND is_archived = ?", teamID, true).
		Order("archived_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, apperror.Persistence("failed to list archived tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepositoryImpl) ListEligibleForArchive(ctx context.Context, teamID uint) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND status = ? AND review_status = ? AND is_archived = ?",
			teamID, models.StageComplete, models.ReviewPassed, false).
		Order("id").
		Find(&tasks).Error
	if err != nil {
		return nil, apperror.Persistence("failed to list archivable tasks", err)
	}
	return tasks, nil
}

// Save commits the task state together with its history events. Either
// everything lands or nothing does.
func (r *TaskRepositoryImpl) Save(ctx context.Context, task *models.Task, events ...*models.HistoryEvent) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}
		for _, event := range events {
			if err := tx.Create(event).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperror.Persistence("failed to save task", err)
	}
	return nil
}

func (r *TaskRepositoryImpl) ArchiveBatch(ctx context.Context, tasks []*models.Task, events []*models.HistoryEvent) (int64, error) {
	if len(tasks) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, task := range tasks {
			if err := tx.Save(task).Error; err != nil {
				return err
			}
			count++
		}
		for _, event := range events {
			if err := tx.Create(event).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, apperror.Persistence("failed to archive tasks", err)
	}
	return count, nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return apperror.Persistence("failed to delete task", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("task not found")
	}
	return nil
}

func (r *TaskRepositoryImpl) StageCounts(ctx context.Context, teamID uint) (*repositories.StageCounts, error) {
	counts := &repositories.StageCounts{}

	rows := []struct {
		Status models.Stage
		Count  int64
	}{}
	err := r.db.WithContext(ctx).Model(&models.Task{}).
		Select("status, count(*) as count").
		Where("team_id = ? AND is_archived = ?", teamID, false).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Persistence("failed to count stages", err)
	}
	for _, row := range rows {
		switch row.Status {
		case models.StageTodo:
			counts.Todo = row.Count
		case models.StageDoing:
			counts.Doing = row.Count
		case models.StageReview:
			counts.Review = row.Count
		case models.StageComplete:
			counts.Complete = row.Count
		}
	}

	err = r.db.WithContext(ctx).Model(&models.Task{}).
		Where("team_id = ? AND is_archived = ?", teamID, true).
		Count(&counts.Archived).Error
	if err != nil {
		return nil, apperror.Persistence("failed to count archived tasks", err)
	}

	err = r.db.WithContext(ctx).Model(&models.Task{}).
		Where("team_id = ? AND is_archived = ? AND due_date < ? AND status <> ?",
			teamID, false, time.Now().UTC(), models.StageComplete).
		Count(&counts.Overdue).Error
	if err != nil {
		return nil, apperror.Persistence("failed to count overdue tasks", err)
	}

	return counts, nil
}
