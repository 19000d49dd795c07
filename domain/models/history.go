package models

import (
	"time"

	"github.com/google/uuid"
)

type ChangeType string

const (
	ChangeCreated           ChangeType = "created"
	ChangeUpdated           ChangeType = "updated"
	ChangeAssigned          ChangeType = "assigned"
	ChangeStatusChanged     ChangeType = "status_changed"
	ChangeColumnMoved       ChangeType = "column_moved"
	ChangeFieldValueChanged ChangeType = "field_value_changed"
	ChangePriorityChanged   ChangeType = "priority_changed"
	ChangeReviewSubmitted   ChangeType = "review_submitted"
	ChangeReviewPassed      ChangeType = "review_passed"
	ChangeReviewFailed      ChangeType = "review_failed"
	ChangeArchived          ChangeType = "archived_to_history"
)

// HistoryEvent is append-only. Rows are never mutated; an admin user purge
// nulls the actor reference but keeps the row. Actor display names are joined
// at read time only, so a hard-deleted user cannot break past events.
//
// Events are built through the typed constructors below rather than by
// filling the struct directly, so each change type carries exactly the
// fields that make sense for it.
type HistoryEvent struct {
	ID         uint       `gorm:"primaryKey;autoIncrement"`
	TaskID     uint       `gorm:"not null;index"`
	ChangeType ChangeType `gorm:"size:30;not null"`

	OldValue *string `gorm:"type:text"`
	NewValue *string `gorm:"type:text"`

	FromColumnID     *uint
	ToColumnID       *uint
	TimeSpentSeconds *int64 // dwell time in the vacated column

	ActorID *uuid.UUID `gorm:"type:uuid;index"` // nullable: survives user purge
	Details string     `gorm:"type:text"`

	CreatedAt time.Time `gorm:"index"`

	Task Task `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

func (HistoryEvent) TableName() string {
	return "history_events"
}

func strPtr(s string) *string { return &s }

func baseEvent(taskID uint, actor uuid.UUID, changeType ChangeType) *HistoryEvent {
	a := actor
	return &HistoryEvent{
		TaskID:     taskID,
		ChangeType: changeType,
		ActorID:    &a,
		CreatedAt:  time.Now().UTC(),
	}
}

func NewCreatedEvent(taskID uint, actor uuid.UUID, title string) *HistoryEvent {
	e := baseEvent(taskID, actor, ChangeCreated)
	e.NewValue = strPtr(title)
	return e
}

func NewUpdatedEvent(taskID uint, actor uuid.UUID, field, oldValue, newValue string) *HistoryEvent {
	e := baseEvent(taskID, actor, ChangeUpdated)
	e.OldValue = strPtr(oldValue)
	e.NewValue = strPtr(newValue)
	e.Details = field
	return e
}

func NewAssignedEvent(taskID uint, actor uuid.UUID, assignee uuid.UUID) *HistoryEvent {
	e := baseEvent(taskID, actor, ChangeAssigned)
	e.NewValue = strPtr(assignee.String())
	return e
}

func NewStatusChangedEvent(taskID uint, actor uuid.UUID, oldStage, newStage Stage) *HistoryEvent {
	e := baseEvent(taskID, actor, ChangeStatusChanged)
	e.OldValue = strPtr(string(oldStage))
	e.NewValue = strPtr(string(newStage))
	return e
}

// NewColumnMovedEvent records a board move together with the dwell time the
// task spent in the vacated column.
func NewColumnMovedEvent(taskID uint, actor uuid.UUID, fromColumn, toColumn uint, dwell time.Duration) *HistoryEvent {
	e := baseEvent(taskID, actor, ChangeColumnMoved)
	from, to := fromColumn, toColumn
	secs := int64(dwell.Seconds())
	if secs < 0 {
		secs = 0
	}
	e.FromColumnID = &from
	e.ToColumnID = &to
	e.TimeSpentSeconds = &secs
	return e
}

func NewFieldValueChangedEvent(taskID uint, actor uuid.UUID, fieldName, oldValue, newValue string) *HistoryEvent {
	e := baseEvent(taskID, actor, ChangeFieldValueChanged)
	e.OldValue = strPtr(oldValue)
	e.NewValue = strPtr(newValue)
	e.Details = fieldName
	return e
}

func NewPriorityChangedEvent(taskID uint, actor uuid.UUID, oldPriority, newPriority Priority) *HistoryEvent {
	e := baseEvent(taskID, actor, ChangePriorityChanged)
	e.OldValue = strPtr(string(oldPriority))
	e.NewValue = strPtr(string(newPriority))
	return e
}

func NewReviewSubmittedEvent(taskID uint, actor uuid.UUID) *HistoryEvent {
	return baseEvent(taskID, actor, ChangeReviewSubmitted)
}

func NewReviewPassedEvent(taskID uint, actor uuid.UUID, note string) *HistoryEvent {
	e := baseEvent(taskID, actor, ChangeReviewPassed)
	e.Details = note
	return e
}

// NewReviewFailedEvent carries the mandatory reviewer note and the rollback
// target column.
func NewReviewFailedEvent(taskID uint, actor uuid.UUID, note string, fromColumn, toColumn uint) *HistoryEvent {
	e := baseEvent(taskID, actor, ChangeReviewFailed)
	from, to := fromColumn, toColumn
	e.FromColumnID = &from
	e.ToColumnID = &to
	e.Details = note
	return e
}

func NewArchivedEvent(taskID uint, actor uuid.UUID) *HistoryEvent {
	return baseEvent(taskID, actor, ChangeArchived)
}
