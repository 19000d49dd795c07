package dto

import "github.com/google/uuid"

// TransitionRuleDTO is one explicit source -> dest override entry
type TransitionRuleDTO struct {
	SourceColumnID uint `json:"sourceColumnId" validate:"required"`
	DestColumnID   uint `json:"destColumnId" validate:"required"`
	Allowed        bool `json:"allowed"`
}

type ColumnPermissionDTO struct {
	ColumnID       uint  `json:"columnId" validate:"required"`
	CanAddTask     *bool `json:"canAddTask"`
	CanClearTasks  *bool `json:"canClearTasks"`
	CanAssignTask  *bool `json:"canAssignTask"`
	CanEditTask    *bool `json:"canEditTask"`
	CanDeleteTask  *bool `json:"canDeleteTask"`
	CanViewHistory *bool `json:"canViewHistory"`
}

// UpdateBoardPermissionRequest upserts one user's board permission row,
// column rows, and transition overrides for a team. Nil flags clear back to
// role defaults.
type UpdateBoardPermissionRequest struct {
	UserID uuid.UUID `json:"userId" validate:"required"`

	CanManageBoard   *bool `json:"canManageBoard"`
	CanAddColumn     *bool `json:"canAddColumn"`
	CanRenameColumn  *bool `json:"canRenameColumn"`
	CanReorderColumn *bool `json:"canReorderColumn"`
	CanDeleteColumn  *bool `json:"canDeleteColumn"`
	CanEditAllFields *bool `json:"canEditAllFields"`
	CanDeleteTask    *bool `json:"canDeleteTask"`
	CanReviewTask    *bool `json:"canReviewTask"`
	CanImportExcel   *bool `json:"canImportExcel"`
	CanAssignTask    *bool `json:"canAssignTask"`

	ColumnPermissions []ColumnPermissionDTO `json:"columnPermissions" validate:"dive"`
	TransitionRules   []TransitionRuleDTO   `json:"transitionRules" validate:"dive"`
}

// UserCapabilitiesResponse is the resolved capability set for one user on
// one team, consumed by the admin permission UI
type UserCapabilitiesResponse struct {
	User UserResponse `json:"user"`

	CanManageBoard   bool `json:"canManageBoard"`
	CanAddColumn     bool `json:"canAddColumn"`
	CanRenameColumn  bool `json:"canRenameColumn"`
	CanReorderColumn bool `json:"canReorderColumn"`
	CanDeleteColumn  bool `json:"canDeleteColumn"`
	CanEditAllFields bool `json:"canEditAllFields"`
	CanDeleteTask    bool `json:"canDeleteTask"`
	CanReviewTask    bool `json:"canReviewTask"`
	CanImportExcel   bool `json:"canImportExcel"`
	CanAssignTask    bool `json:"canAssignTask"`

	ColumnPermissions []ColumnPermissionDTO `json:"columnPermissions,omitempty"`
	// TransitionMatrix lists explicit overrides: sourceColumnId -> allowed
	// destination column ids
	TransitionMatrix map[uint][]uint `json:"transitionMatrix,omitempty"`
}

type TeamPermissionsResponse struct {
	TeamID uint                       `json:"teamId"`
	Users  []UserCapabilitiesResponse `json:"users"`
}
