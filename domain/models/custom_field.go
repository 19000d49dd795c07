package models

import (
	"time"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldTime     FieldType = "time"
	FieldDateTime FieldType = "datetime"
	FieldDropdown FieldType = "dropdown"
	FieldImage    FieldType = "image"
)

func (f FieldType) Valid() bool {
	switch f {
	case FieldText, FieldNumber, FieldDate, FieldTime, FieldDateTime, FieldDropdown, FieldImage:
		return true
	}
	return false
}

// CustomField is a team-scoped (TeamID nil = global) field definition.
// Soft-deleted via IsActive so existing values keep rendering.
type CustomField struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	TeamID    *uint     `gorm:"index"`
	Name      string    `gorm:"size:255;not null"`
	Type      FieldType `gorm:"size:20;not null"`
	Required  bool      `gorm:"default:false"`
	IsActive  bool      `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Options []CustomFieldOption `gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE"`
}

func (CustomField) TableName() string {
	return "custom_fields"
}

// CustomFieldOption is one entry of a dropdown field's ordered option list
type CustomFieldOption struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	FieldID  uint   `gorm:"not null;index"`
	Value    string `gorm:"size:255;not null"`
	Position int    `gorm:"not null"`
}

func (CustomFieldOption) TableName() string {
	return "custom_field_options"
}

// CustomFieldValue holds one task's value for one field. Image fields store
// the object-storage key plus mimetype instead of an inline value.
type CustomFieldValue struct {
	ID      uint `gorm:"primaryKey;autoIncrement"`
	TaskID  uint `gorm:"not null;uniqueIndex:idx_field_values_task_field"`
	FieldID uint `gorm:"not null;uniqueIndex:idx_field_values_task_field"`

	Value     string `gorm:"type:text"`
	ObjectKey string `gorm:"size:500"` // set for image fields
	MimeType  string `gorm:"size:100"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Task  Task        `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Field CustomField `gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE"`
}

func (CustomFieldValue) TableName() string {
	return "custom_field_values"
}
