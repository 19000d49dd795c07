package dto

import "github.com/google/uuid"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest creates a user account. Identity keys come from the
// external identity system; when absent a fresh UUID is assigned.
type RegisterRequest struct {
	ID          *uuid.UUID `json:"id"`
	Email       string     `json:"email" validate:"required,email"`
	Username    string     `json:"username" validate:"required,min=3,max=50"`
	DisplayName string     `json:"displayName" validate:"max=255"`
	Password    string     `json:"password" validate:"required,min=8"`
	Role        string     `json:"role" validate:"omitempty,oneof=admin manager submanager user"`
	TeamID      *uint      `json:"teamId"`
	ManagerID   *uuid.UUID `json:"managerId"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	TeamID      *uint     `json:"teamId,omitempty"`
}
