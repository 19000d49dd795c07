package postgres

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskboard-api/domain/models"
	"taskboard-api/pkg/apperror"
	"taskboard-api/pkg/config"
)

func NewDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Team{},
		&models.User{},
		&models.BoardColumn{},
		&models.Task{},
		&models.HistoryEvent{},
		// permission layer
		&models.BoardPermission{},
		&models.ColumnPermission{},
		&models.TransitionRule{},
		// move request broker
		&models.MoveRequest{},
		// custom fields
		&models.CustomField{},
		&models.CustomFieldOption{},
		&models.CustomFieldValue{},
		// reporting
		&models.DailyReport{},
	)
}

// wrapErr translates storage errors into the typed kinds the services work
// with. Record misses become NotFound, everything else a persistence failure.
func wrapErr(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(notFoundMsg)
	}
	return apperror.Persistence("database operation failed", err)
}
