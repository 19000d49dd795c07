package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/pkg/apperror"
)

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	return wrapErr(r.db.WithContext(ctx).Create(user).Error, "user not found")
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, wrapErr(err, "user not found")
	}
	return &user, nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, wrapErr(err, "user not found")
	}
	return &user, nil
}

func (r *UserRepositoryImpl) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, wrapErr(err, "user not found")
	}
	return &user, nil
}

func (r *UserRepositoryImpl) ListByTeam(ctx context.Context, teamID uint) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Order("username").Find(&users).Error
	if err != nil {
		return nil, apperror.Persistence("failed to list users", err)
	}
	return users, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *models.User) error {
	return wrapErr(r.db.WithContext(ctx).Save(user).Error, "user not found")
}

// Purge removes the account and its authorization rows but keeps business
// records readable: history rows lose their actor reference, tasks their
// assignment, pending move requests disappear.
func (r *UserRepositoryImpl) Purge(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.HistoryEvent{}).
			Where("actor_id = ?", id).
			Update("actor_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Task{}).
			Where("assigned_to = ?", id).
			Updates(map[string]any{"assigned_to": nil, "assigned_by": nil, "assigned_at": nil}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.BoardPermission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.ColumnPermission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.TransitionRule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("requested_by = ? AND status = ?", id, models.MoveRequestPending).
			Delete(&models.MoveRequest{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.User{}).Error
	})
	if err != nil {
		return apperror.Persistence("failed to purge user", err)
	}
	return nil
}
