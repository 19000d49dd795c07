package models

import (
	"time"
)

// Stage is the coarse workflow position. Every board column maps to exactly
// one stage; the fixed ordering drives the role-default transition rules.
type Stage string

const (
	StageTodo     Stage = "todo"
	StageDoing    Stage = "doing"
	StageReview   Stage = "review"
	StageComplete Stage = "complete"
)

var stageOrder = map[Stage]int{
	StageTodo:     0,
	StageDoing:    1,
	StageReview:   2,
	StageComplete: 3,
}

// Order returns the stage's index in the fixed ToDo->Doing->Review->Complete
// ordering, or -1 for an unknown value.
func (s Stage) Order() int {
	if idx, ok := stageOrder[s]; ok {
		return idx
	}
	return -1
}

func (s Stage) Valid() bool {
	return s.Order() >= 0
}

// BoardColumn is a named, ordered lane on a team's board. Deleting a column
// is restricted while tasks still reference it.
type BoardColumn struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	TeamID    uint      `gorm:"not null;index"`
	Name      string    `gorm:"size:255;not null"`
	Position  int       `gorm:"not null"` // left-to-right board order
	Stage     Stage     `gorm:"size:20;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Team Team `gorm:"foreignKey:TeamID"`
}

func (BoardColumn) TableName() string {
	return "board_columns"
}
