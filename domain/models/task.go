package models

import (
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type ReviewStatus string

const (
	ReviewNone   ReviewStatus = "none"
	ReviewPassed ReviewStatus = "passed"
	ReviewFailed ReviewStatus = "failed"
)

// Task belongs to exactly one team and one column of that team's board.
// Status is the denormalized stage of the current column.
type Task struct {
	ID          uint     `gorm:"primaryKey;autoIncrement"`
	TeamID      uint     `gorm:"not null;index"`
	ColumnID    uint     `gorm:"not null;index"`
	Title       string   `gorm:"size:255;not null"`
	Description string   `gorm:"type:text"`
	Status      Stage    `gorm:"size:20;not null;default:'todo'"`
	Priority    Priority `gorm:"size:20;default:'medium'"`
	DueDate     *time.Time

	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	AssignedTo *uuid.UUID `gorm:"type:uuid;index"`
	AssignedBy *uuid.UUID `gorm:"type:uuid"`
	AssignedAt *time.Time

	ReviewStatus ReviewStatus `gorm:"size:20;default:'none'"`
	ReviewedBy   *uuid.UUID   `gorm:"type:uuid"`
	ReviewedAt   *time.Time
	ReviewNote   string `gorm:"type:text"`

	CompletedBy *uuid.UUID `gorm:"type:uuid"`
	CompletedAt *time.Time

	// Column the task occupied before entering Review; the fail path rolls
	// back to it.
	PreviousColumnID *uint

	IsArchived bool `gorm:"default:false;index"`
	ArchivedAt *time.Time

	// When the task entered its current column. Dwell time for the history
	// event is computed from this at the moment of the next move.
	CurrentColumnEntryAt time.Time `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Team   Team        `gorm:"foreignKey:TeamID"`
	Column BoardColumn `gorm:"foreignKey:ColumnID"`
}

func (Task) TableName() string {
	return "tasks"
}

// IsTerminal reports whether the task left the active workflow: archived, or
// completed with a passed review. Terminal tasks reject further transitions.
func (t *Task) IsTerminal() bool {
	if t.IsArchived {
		return true
	}
	return t.Status == StageComplete && t.ReviewStatus == ReviewPassed
}

// ArchiveEligible: complete + passed + not yet archived
func (t *Task) ArchiveEligible() bool {
	return t.Status == StageComplete && t.ReviewStatus == ReviewPassed && !t.IsArchived
}
