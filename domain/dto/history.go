package dto

import (
	"time"

	"github.com/google/uuid"
)

type HistoryEventResponse struct {
	ID         uint   `json:"id"`
	TaskID     uint   `json:"taskId"`
	ChangeType string `json:"changeType"`

	OldValue *string `json:"oldValue,omitempty"`
	NewValue *string `json:"newValue,omitempty"`

	FromColumnID     *uint  `json:"fromColumnId,omitempty"`
	ToColumnID       *uint  `json:"toColumnId,omitempty"`
	TimeSpentSeconds *int64 `json:"timeSpentInSeconds,omitempty"`

	ActorID *uuid.UUID `json:"actorId,omitempty"` // null when the actor was purged
	Details string     `json:"details,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
