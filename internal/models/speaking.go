package models

import (
	"time"
)

type SpeakingTest struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Difficulty  DifficultyLevel `json:"difficulty" gorm:"not null;index" validate:"required,oneof=Easy Intermediate Hard"`
	Description *string         `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Questions []SpeakingQuestion `json:"questions,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`
}

type SpeakingQuestion struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	TestID         uint   `json:"test_id" gorm:"not null;index"`
	QuestionNumber int    `json:"question_number" gorm:"not null"`
	Prompt         string `json:"prompt" gorm:"type:text;not null" validate:"required"`

	// Timing in seconds. Defaults applied at create when the request omits them.
	PreparationTime int `json:"preparation_time" gorm:"not null;default:15"`
	ResponseTime    int `json:"response_time" gorm:"not null;default:60"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	DefaultPreparationTime = 15
	DefaultResponseTime    = 60
)

func (SpeakingTest) TableName() string     { return "speaking_tests" }
func (SpeakingQuestion) TableName() string { return "speaking_questions" }

func (q SpeakingQuestion) ParentID() uint { return q.TestID }
