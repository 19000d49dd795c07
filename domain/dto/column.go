package dto

type CreateColumnRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Stage string `json:"stage" validate:"required,oneof=todo doing review complete"`
}

type UpdateColumnRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type ReorderColumnsRequest struct {
	ColumnIDs []uint `json:"columnIds" validate:"required,min=1"`
}

type ColumnResponse struct {
	ID       uint   `json:"id"`
	TeamID   uint   `json:"teamId"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	Stage    string `json:"stage"`
}
