package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	TeamID      uint            `json:"teamId" validate:"required"`
	ColumnID    *uint           `json:"columnId"` // default: first todo column
	Title       string          `json:"title" validate:"required,min=1,max=255"`
	Description string          `json:"description" validate:"max=2000"`
	Priority    string          `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	DueDate     *time.Time      `json:"dueDate"`
	AssignedTo  *uuid.UUID      `json:"assignedTo"`
	FieldValues map[uint]string `json:"fieldValues"` // custom field id -> value
}

type UpdateTaskRequest struct {
	Title       string     `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	DueDate     *time.Time `json:"dueDate"`
}

type AssignTaskRequest struct {
	AssigneeID uuid.UUID `json:"assigneeId" validate:"required"`
}

type MoveTaskRequest struct {
	ToColumnID uint `json:"toColumnId" validate:"required"`
}

type TaskResponse struct {
	ID          uint       `json:"id"`
	TeamID      uint       `json:"teamId"`
	ColumnID    uint       `json:"columnId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`

	CreatedBy  uuid.UUID  `json:"createdBy"`
	AssignedTo *uuid.UUID `json:"assignedTo,omitempty"`
	AssignedBy *uuid.UUID `json:"assignedBy,omitempty"`
	AssignedAt *time.Time `json:"assignedAt,omitempty"`

	ReviewStatus string     `json:"reviewStatus"`
	ReviewedBy   *uuid.UUID `json:"reviewedBy,omitempty"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	ReviewNote   string     `json:"reviewNote,omitempty"`

	CompletedBy *uuid.UUID `json:"completedBy,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	IsArchived bool       `json:"isArchived"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`

	CurrentColumnEntryAt time.Time `json:"currentColumnEntryAt"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// BoardResponse is the full board read model: a client that missed a push
// re-fetches this and converges
type BoardResponse struct {
	Team    TeamResponse          `json:"team"`
	Columns []BoardColumnResponse `json:"columns"`
}

type BoardColumnResponse struct {
	Column ColumnResponse `json:"column"`
	Tasks  []TaskResponse `json:"tasks"`
}

type ArchiveResultResponse struct {
	ArchivedCount int64 `json:"archivedCount"`
}
