package models

import (
	"time"
)

// User is an end-user account. This service only administers users (list,
// activate, deactivate, delete) and reads their submission history; accounts
// and submissions are written by the practice-facing service.
type User struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Email           string     `json:"email" gorm:"not null;uniqueIndex;size:255"`
	FullName        *string    `json:"full_name" gorm:"size:255"`
	GoogleID        *string    `json:"google_id" gorm:"size:255;index"`
	TargetBandScore *string    `json:"target_band_score" gorm:"size:10"`
	IsActive        bool       `json:"is_active" gorm:"not null;default:true"`
	CreatedAt       time.Time  `json:"created_at"`
	LastLogin       *time.Time `json:"last_login"`
}

// Submission is one user's run at a test in a given skill module. Stored in a
// per-module table; the dashboard aggregates across all four.
type Submission struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"not null;index"`
	TestID      uint       `json:"test_id" gorm:"not null;index"`
	IsCompleted bool       `json:"is_completed" gorm:"not null;default:false"`
	CreatedAt   time.Time  `json:"created_at"`
	SubmittedAt *time.Time `json:"submitted_at"`
}

type SpeakingSubmission struct{ Submission }
type ReadingSubmission struct{ Submission }
type WritingSubmission struct{ Submission }
type ListeningSubmission struct{ Submission }

func (User) TableName() string                { return "users" }
func (SpeakingSubmission) TableName() string  { return "speaking_submissions" }
func (ReadingSubmission) TableName() string   { return "reading_submissions" }
func (WritingSubmission) TableName() string   { return "writing_submissions" }
func (ListeningSubmission) TableName() string { return "listening_submissions" }
