package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMoveRequestRequest struct {
	ToColumnID uint `json:"toColumnId" validate:"required"`
}

type HandleMoveRequestRequest struct {
	Approved *bool  `json:"approved" validate:"required"`
	Reply    string `json:"reply" validate:"max=2000"`
}

type MoveRequestResponse struct {
	ID             uint       `json:"id"`
	TaskID         uint       `json:"taskId"`
	TeamID         uint       `json:"teamId"`
	FromColumnID   uint       `json:"fromColumnId"`
	ToColumnID     uint       `json:"toColumnId"`
	FromColumnName string     `json:"fromColumnName"`
	ToColumnName   string     `json:"toColumnName"`
	RequestedBy    uuid.UUID  `json:"requestedBy"`
	Status         string     `json:"status"`
	AdminReply     string     `json:"adminReply,omitempty"`
	HandledBy      *uuid.UUID `json:"handledBy,omitempty"`
	HandledAt      *time.Time `json:"handledAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
