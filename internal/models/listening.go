package models

import (
	"time"

	"gorm.io/datatypes"
)

type ListeningTest struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Difficulty  DifficultyLevel `json:"difficulty" gorm:"not null;index" validate:"required,oneof=Easy Intermediate Hard"`
	Description *string         `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Sections []ListeningSection `json:"sections,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`
}

type ListeningSection struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	TestID        uint    `json:"test_id" gorm:"not null;index"`
	SectionNumber int     `json:"section_number" gorm:"not null"`
	SectionType   string  `json:"section_type" gorm:"not null;size:100" validate:"required"`
	AudioFilePath string  `json:"audio_file_path" gorm:"not null;size:500" validate:"required"`
	Context       *string `json:"context" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	QuestionPacks []ListeningQuestionPack `json:"question_packs,omitempty" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
}

type ListeningQuestionPack struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	SectionID         uint           `json:"section_id" gorm:"not null;index"`
	QuestionStart     int            `json:"question_start" gorm:"not null"`
	QuestionEnd       int            `json:"question_end" gorm:"not null"`
	QuestionsMarkdown string         `json:"questions_markdown" gorm:"type:text;not null" validate:"required"`
	CorrectAnswers    datatypes.JSON `json:"correct_answers" gorm:"type:jsonb"`
	ImagePath         *string        `json:"image_path" gorm:"size:500"`
	OrderMatters      bool           `json:"order_matters" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ListeningTest) TableName() string         { return "listening_tests" }
func (ListeningSection) TableName() string      { return "listening_sections" }
func (ListeningQuestionPack) TableName() string { return "listening_question_packs" }

func (s ListeningSection) ParentID() uint      { return s.TestID }
func (p ListeningQuestionPack) ParentID() uint { return p.SectionID }
