package models

import (
	"time"
)

type WritingTestType string

const (
	WritingAcademic WritingTestType = "Academic"
	WritingGeneral  WritingTestType = "General"
)

type WritingTest struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	TestType    WritingTestType `json:"test_type" gorm:"not null" validate:"required,oneof=Academic General"`
	Difficulty  DifficultyLevel `json:"difficulty" gorm:"not null;index" validate:"required,oneof=Easy Intermediate Hard"`
	Description *string         `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Tasks []WritingTask `json:"tasks,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`
}

type WritingTask struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	TestID         uint   `json:"test_id" gorm:"not null;index"`
	TaskNumber     int    `json:"task_number" gorm:"not null"`
	TaskType       string `json:"task_type" gorm:"not null;size:100" validate:"required"`
	PromptMarkdown string `json:"prompt_markdown" gorm:"type:text;not null" validate:"required"`
	MinWords       int    `json:"min_words" gorm:"not null" validate:"required,min=1"`
	MaxWords       *int   `json:"max_words" validate:"omitempty,min=1"`

	// Minutes. Default applied at create when the request omits it.
	TimeLimitMinutes int `json:"time_limit_minutes" gorm:"not null;default:60"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const DefaultTimeLimitMinutes = 60

func (WritingTest) TableName() string { return "writing_tests" }
func (WritingTask) TableName() string { return "writing_tasks" }

func (t WritingTask) ParentID() uint { return t.TestID }
