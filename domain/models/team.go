package models

import (
	"time"
)

// Team is the tenant boundary. Every board column, task, and permission row
// is scoped to one team.
type Team struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:255;not null"`
	Slug      string    `gorm:"size:255;uniqueIndex;not null"` // websocket room name, seed lookups
	IsActive  bool      `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Team) TableName() string {
	return "teams"
}
