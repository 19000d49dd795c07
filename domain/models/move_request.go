package models

import (
	"time"

	"github.com/google/uuid"
)

type MoveRequestStatus string

const (
	MoveRequestPending  MoveRequestStatus = "pending"
	MoveRequestApproved MoveRequestStatus = "approved"
	MoveRequestRejected MoveRequestStatus = "rejected"
)

// MoveRequest is a deferred, approval-gated transition for users without
// direct rights for the move. Column names are snapshotted at submission for
// display, so the request stays readable even after board edits.
type MoveRequest struct {
	ID     uint `gorm:"primaryKey;autoIncrement"`
	TaskID uint `gorm:"not null;index"`
	TeamID uint `gorm:"not null;index"`

	FromColumnID   uint   `gorm:"not null"`
	ToColumnID     uint   `gorm:"not null"`
	FromColumnName string `gorm:"size:255"`
	ToColumnName   string `gorm:"size:255"`

	RequestedBy uuid.UUID         `gorm:"type:uuid;not null"`
	Status      MoveRequestStatus `gorm:"size:20;default:'pending';index"`
	AdminReply  string            `gorm:"type:text"`
	HandledBy   *uuid.UUID        `gorm:"type:uuid"`
	HandledAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Task Task `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

func (MoveRequest) TableName() string {
	return "move_requests"
}

// Terminal: handled requests reject any further handling
func (m *MoveRequest) Terminal() bool {
	return m.Status != MoveRequestPending
}
