package dto

type CreateCustomFieldRequest struct {
	TeamID   *uint    `json:"teamId"` // nil = global field
	Name     string   `json:"name" validate:"required,min=1,max=255"`
	Type     string   `json:"type" validate:"required,oneof=text number date time datetime dropdown image"`
	Required bool     `json:"required"`
	Options  []string `json:"options"` // dropdown only, in display order
}

type UpdateCustomFieldRequest struct {
	Name     string   `json:"name" validate:"omitempty,min=1,max=255"`
	Required *bool    `json:"required"`
	Options  []string `json:"options"`
}

type SetFieldValueRequest struct {
	Value string `json:"value" validate:"max=2000"`
}

type CustomFieldResponse struct {
	ID       uint     `json:"id"`
	TeamID   *uint    `json:"teamId,omitempty"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	IsActive bool     `json:"isActive"`
	Options  []string `json:"options,omitempty"`
}

type FieldValueResponse struct {
	FieldID  uint   `json:"fieldId"`
	TaskID   uint   `json:"taskId"`
	Value    string `json:"value,omitempty"`
	FileURL  string `json:"fileUrl,omitempty"` // image fields
	MimeType string `json:"mimeType,omitempty"`
}
