package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/ielts-prep/admin-service/internal/models"
)

// Child is implemented by every content entity that belongs to a container.
type Child interface {
	ParentID() uint
}

// ContentRepository is the shared consistency contract over one
// (container, child) level of a skill module's content hierarchy. All
// mutating operations run inside the supplied transaction; a nil tx falls
// back to the repository's own connection.
//
// Guarantees:
//   - a child is only created if its container exists at commit time
//   - deleting a container removes every descendant in the same transaction
//   - GetContainer returns children ordered by their sequence column
//   - ListContainers returns containers in creation order
type ContentRepository[P any, C Child] interface {
	CreateContainer(ctx context.Context, tx *gorm.DB, container *P) error
	ListContainers(ctx context.Context, tx *gorm.DB) ([]P, error)
	GetContainer(ctx context.Context, tx *gorm.DB, id uint) (*P, error)
	UpdateContainer(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error
	DeleteContainer(ctx context.Context, tx *gorm.DB, id uint) error

	CreateChild(ctx context.Context, tx *gorm.DB, child *C) error
	GetChild(ctx context.Context, tx *gorm.DB, id uint) (*C, error)
	UpdateChild(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error
	DeleteChild(ctx context.Context, tx *gorm.DB, id uint) error

	CountContainers(ctx context.Context, tx *gorm.DB) (int64, error)
}

// UserFilters narrows and pages the dashboard user listing.
type UserFilters struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// UserRepository gives the dashboard read/administer access to end-user
// accounts.
type UserRepository interface {
	List(ctx context.Context, tx *gorm.DB, filters UserFilters) ([]models.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	SetActive(ctx context.Context, tx *gorm.DB, id uint, active bool) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	Count(ctx context.Context, tx *gorm.DB) (total int64, active int64, err error)
}

// SubmissionCounts is the per-module submission tally for one user or for
// the whole platform.
type SubmissionCounts struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
}

// RecentSubmission is one row of the cross-module recent activity feed.
type RecentSubmission struct {
	ID          uint               `json:"id"`
	Module      models.SkillModule `json:"type"`
	UserEmail   string             `json:"user_email"`
	TestTitle   string             `json:"test_title"`
	IsCompleted bool               `json:"is_completed"`
	CreatedAt   string             `json:"created_at"`
	SubmittedAt *string            `json:"submitted_at"`
}

// DashboardRepository aggregates statistics across all four skill modules.
type DashboardRepository interface {
	SubmissionCountsByUser(ctx context.Context, tx *gorm.DB, userID uint) (map[models.SkillModule]int64, error)
	SubmissionCountsByModule(ctx context.Context, tx *gorm.DB) (map[models.SkillModule]SubmissionCounts, error)
	RecentSubmissions(ctx context.Context, tx *gorm.DB, perModuleLimit int) ([]RecentSubmission, error)
}

// Repository is the root access point to all persistence, mirroring the
// content hierarchy: one repository per (container, child) level.
type Repository interface {
	SpeakingTests() ContentRepository[models.SpeakingTest, models.SpeakingQuestion]
	ReadingTests() ContentRepository[models.ReadingTest, models.ReadingPassage]
	ReadingPassages() ContentRepository[models.ReadingPassage, models.ReadingQuestionPack]
	WritingTests() ContentRepository[models.WritingTest, models.WritingTask]
	ListeningTests() ContentRepository[models.ListeningTest, models.ListeningSection]
	ListeningSections() ContentRepository[models.ListeningSection, models.ListeningQuestionPack]

	Users() UserRepository
	Dashboard() DashboardRepository

	Ping(ctx context.Context) error
}
