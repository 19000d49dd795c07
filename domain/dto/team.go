package dto

type CreateTeamRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

type UpdateTeamRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

type TeamResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"isActive"`
}
