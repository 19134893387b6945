package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/ielts-prep/admin-service/internal/models"
	"github.com/ielts-prep/admin-service/internal/repositories"
	"github.com/ielts-prep/admin-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Request DTOs live in the validator package so their tags stay next to the
// validation rules.
type AdminLoginRequest = validator.AdminLoginRequest

// LoginResponse mirrors the token response the admin frontend expects.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      uint   `json:"user_id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	IsAdmin     bool   `json:"is_admin"`
}

// SubmissionStats is the per-module submission breakdown for the dashboard.
type SubmissionStats struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	InProgress int64 `json:"in_progress"`
}

// DashboardStats is the stats endpoint payload.
type DashboardStats struct {
	TotalUsers  int64                                  `json:"total_users"`
	ActiveUsers int64                                  `json:"active_users"`
	Tests       map[models.SkillModule]int64           `json:"tests"`
	Submissions map[models.SkillModule]SubmissionStats `json:"submissions"`
}

// UserDetail augments a user record with their per-module submission counts.
type UserDetail struct {
	models.User
	SubmissionCounts map[models.SkillModule]int64 `json:"submission_counts"`
}

// TestSummary is one row of the tests overview listing.
type TestSummary struct {
	ID         uint                   `json:"id"`
	Title      string                 `json:"title"`
	Difficulty models.DifficultyLevel `json:"difficulty"`
}

// ===== SERVICE INTERFACES =====

// AuthService issues admin tokens against the fixed credential pair.
type AuthService interface {
	Login(ctx context.Context, req *AdminLoginRequest) (*LoginResponse, error)
}

// ContentService runs the admin CRUD over one (container, child) level of a
// skill module, wrapping each mutation in a transaction and publishing a
// content event after commit.
type ContentService[P any, C repositories.Child] interface {
	CreateContainer(ctx context.Context, container *P) error
	ListContainers(ctx context.Context) ([]P, error)
	GetContainer(ctx context.Context, id uint) (*P, error)
	UpdateContainer(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteContainer(ctx context.Context, id uint) error

	CreateChild(ctx context.Context, child *C) error
	GetChild(ctx context.Context, id uint) (*C, error)
	UpdateChild(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteChild(ctx context.Context, id uint) error
}

// UserService administers end-user accounts from the dashboard.
type UserService interface {
	List(ctx context.Context, skip, limit int) ([]models.User, error)
	Get(ctx context.Context, id uint) (*UserDetail, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
}

// DashboardService aggregates read-only statistics for the admin dashboard.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	RecentSubmissions(ctx context.Context, limit int) ([]repositories.RecentSubmission, error)
	TestsOverview(ctx context.Context) (map[models.SkillModule][]TestSummary, error)
	ExportUsers(ctx context.Context) (*excelize.File, error)
}

// ServiceManager bundles all services behind one dependency for the handlers.
type ServiceManager interface {
	Auth() AuthService

	SpeakingTests() ContentService[models.SpeakingTest, models.SpeakingQuestion]
	ReadingTests() ContentService[models.ReadingTest, models.ReadingPassage]
	ReadingPassages() ContentService[models.ReadingPassage, models.ReadingQuestionPack]
	WritingTests() ContentService[models.WritingTest, models.WritingTask]
	ListeningTests() ContentService[models.ListeningTest, models.ListeningSection]
	ListeningSections() ContentService[models.ListeningSection, models.ListeningQuestionPack]

	Users() UserService
	Dashboard() DashboardService

	Shutdown() error
}
