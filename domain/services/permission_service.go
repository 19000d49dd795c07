package services

import (
	"context"

	"github.com/google/uuid"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
)

// Capabilities is a user's resolved board-level capability set for one team.
// Resolution order: explicit per-user override row, then role default.
type Capabilities struct {
	ManageBoard   bool
	AddColumn     bool
	RenameColumn  bool
	ReorderColumn bool
	DeleteColumn  bool
	EditAllFields bool
	DeleteTask    bool
	ReviewTask    bool
	ImportExcel   bool
	AssignTask    bool
}

// ColumnCapabilities is the per-column set, resolved the same way
type ColumnCapabilities struct {
	AddTask     bool
	ClearTasks  bool
	AssignTask  bool
	EditTask    bool
	DeleteTask  bool
	ViewHistory bool
}

// PermissionService resolves effective capabilities and transition rights.
// Resolution is pure lookup plus role defaults; it never mutates state except
// through the explicit admin Update call.
type PermissionService interface {
	ResolveBoard(ctx context.Context, actor *models.User, teamID uint) (*Capabilities, error)
	ResolveColumn(ctx context.Context, actor *models.User, column *models.BoardColumn) (*ColumnCapabilities, error)

	// CanTransition decides source -> dest for the actor. An explicit
	// per-user rule (allow or deny) beats the role-default matrix.
	CanTransition(ctx context.Context, actor *models.User, source, dest *models.BoardColumn) (bool, error)

	GetTeamPermissions(ctx context.Context, actorID uuid.UUID, teamID uint) (*dto.TeamPermissionsResponse, error)
	// UpdatePermissions upserts one user's override rows and replaces their
	// transition rule set. Admin or team manager only.
	UpdatePermissions(ctx context.Context, actorID uuid.UUID, teamID uint, req *dto.UpdateBoardPermissionRequest) error
}
