package models

import (
	"time"
)

// DailyReport is one per-team snapshot of board state, written by the
// scheduled report job and queryable on demand.
type DailyReport struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	TeamID     uint      `gorm:"not null;uniqueIndex:idx_daily_report_team_date"`
	ReportDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_report_team_date"`

	TodoCount     int64
	DoingCount    int64
	ReviewCount   int64
	CompleteCount int64
	ArchivedCount int64
	OverdueCount  int64

	CreatedAt time.Time

	Team Team `gorm:"foreignKey:TeamID"`
}

func (DailyReport) TableName() string {
	return "daily_reports"
}
