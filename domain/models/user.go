package models

import (
	"time"

	"github.com/google/uuid"
)

// Role hierarchy: admin > manager > submanager > user
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleSubManager Role = "submanager"
	RoleUser       Role = "user"
)

// User identity keys are assigned by the external identity system, so the ID
// is not a surrogate integer like the business entities.
type User struct {
	ID          uuid.UUID  `gorm:"primaryKey;type:uuid"`
	Email       string     `gorm:"uniqueIndex;not null"`
	Username    string     `gorm:"uniqueIndex;not null"`
	DisplayName string     `gorm:"size:255"`
	Password    string     // bcrypt hash; login glue only
	Role        Role       `gorm:"size:20;default:'user'"`
	TeamID      *uint      `gorm:"index"`
	ManagerID   *uuid.UUID `gorm:"type:uuid;index"` // parent in the org hierarchy
	IsActive    bool       `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Team *Team `gorm:"foreignKey:TeamID"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsElevated reports whether the role carries manager-level defaults
func (u *User) IsElevated() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager || u.Role == RoleSubManager
}

// ManagesTeam reports whether the user's elevated defaults apply to teamID.
// Admins manage everything; managers and sub-managers only their own team.
func (u *User) ManagesTeam(teamID uint) bool {
	if u.Role == RoleAdmin {
		return true
	}
	if !u.IsElevated() {
		return false
	}
	return u.TeamID != nil && *u.TeamID == teamID
}

// BelongsToTeam reports plain membership (read access)
func (u *User) BelongsToTeam(teamID uint) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.TeamID != nil && *u.TeamID == teamID
}
