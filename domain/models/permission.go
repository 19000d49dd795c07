package models

import (
	"time"

	"github.com/google/uuid"
)

// BoardPermission is the per-(user, team) override row. Nullable flags mean
// "no override, fall back to the role default"; a non-nil flag wins either
// way (grant or revoke).
type BoardPermission struct {
	ID     uint      `gorm:"primaryKey;autoIncrement"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_perm_user_team"`
	TeamID uint      `gorm:"not null;uniqueIndex:idx_board_perm_user_team"`

	CanManageBoard   *bool
	CanAddColumn     *bool
	CanRenameColumn  *bool
	CanReorderColumn *bool
	CanDeleteColumn  *bool
	CanEditAllFields *bool
	CanDeleteTask    *bool
	CanReviewTask    *bool
	CanImportExcel   *bool
	CanAssignTask    *bool

	CreatedAt time.Time
	UpdatedAt time.Time

	Team Team `gorm:"foreignKey:TeamID"`
}

func (BoardPermission) TableName() string {
	return "board_permissions"
}

// ColumnPermission is the per-(user, column) override row
type ColumnPermission struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_column_perm_user_column"`
	ColumnID uint      `gorm:"not null;uniqueIndex:idx_column_perm_user_column"`

	CanAddTask     *bool
	CanClearTasks  *bool
	CanAssignTask  *bool
	CanEditTask    *bool
	CanDeleteTask  *bool
	CanViewHistory *bool

	CreatedAt time.Time
	UpdatedAt time.Time

	Column BoardColumn `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE"`
}

func (ColumnPermission) TableName() string {
	return "column_permissions"
}

// TransitionRule is one explicit (user, source, dest) transition override.
// It replaces the serialized allowed-transitions map: proper rows, validated
// against the team's column set on write, no dangling references.
// Allowed=false is an explicit deny that beats role defaults.
type TransitionRule struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_transition_rule"`
	TeamID       uint      `gorm:"not null;index"`
	SourceColumn uint      `gorm:"column:source_column_id;not null;uniqueIndex:idx_transition_rule"`
	DestColumn   uint      `gorm:"column:dest_column_id;not null;uniqueIndex:idx_transition_rule"`
	Allowed      bool      `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (TransitionRule) TableName() string {
	return "transition_rules"
}
