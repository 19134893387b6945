package models

import (
	"time"

	"gorm.io/datatypes"
)

type ReadingTest struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Difficulty  DifficultyLevel `json:"difficulty" gorm:"not null;index" validate:"required,oneof=Easy Intermediate Hard"`
	Description *string         `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Passages []ReadingPassage `json:"passages,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`
}

// ReadingPassage sits between a test and its question packs: it is a child of
// the test and a container for packs.
type ReadingPassage struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	TestID          uint   `json:"test_id" gorm:"not null;index"`
	PassageNumber   int    `json:"passage_number" gorm:"not null"`
	Title           string `json:"title" gorm:"not null;size:200" validate:"required"`
	ContentMarkdown string `json:"content_markdown" gorm:"type:text;not null" validate:"required"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	QuestionPacks []ReadingQuestionPack `json:"question_packs,omitempty" gorm:"foreignKey:PassageID;constraint:OnDelete:CASCADE"`
}

type ReadingQuestionPack struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	PassageID         uint           `json:"passage_id" gorm:"not null;index"`
	QuestionStart     int            `json:"question_start" gorm:"not null"`
	QuestionEnd       int            `json:"question_end" gorm:"not null"`
	QuestionsMarkdown string         `json:"questions_markdown" gorm:"type:text;not null" validate:"required"`
	CorrectAnswers    datatypes.JSON `json:"correct_answers" gorm:"type:jsonb"`
	OrderMatters      bool           `json:"order_matters" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReadingTest) TableName() string         { return "reading_tests" }
func (ReadingPassage) TableName() string      { return "reading_passages" }
func (ReadingQuestionPack) TableName() string { return "reading_question_packs" }

func (p ReadingPassage) ParentID() uint      { return p.TestID }
func (p ReadingQuestionPack) ParentID() uint { return p.PassageID }
