package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ielts-prep/admin-service/internal/cache"
	"github.com/ielts-prep/admin-service/internal/models"
	"github.com/ielts-prep/admin-service/internal/repositories"
)

// submissionSource maps one skill module to its submission and test tables.
type submissionSource struct {
	module          models.SkillModule
	submissionTable string
	testTable       string
}

var submissionSources = []submissionSource{
	{models.ModuleSpeaking, "speaking_submissions", "speaking_tests"},
	{models.ModuleReading, "reading_submissions", "reading_tests"},
	{models.ModuleWriting, "writing_submissions", "writing_tests"},
	{models.ModuleListening, "listening_submissions", "listening_tests"},
}

type DashboardPostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewDashboardPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.DashboardRepository {
	return &DashboardPostgreSQL{
		db:    db,
		cache: cache.NewCacheHelper(redisClient, "dashboard:"),
	}
}

func (d *DashboardPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return d.db
}

func (d *DashboardPostgreSQL) SubmissionCountsByUser(ctx context.Context, tx *gorm.DB, userID uint) (map[models.SkillModule]int64, error) {
	db := d.getDB(tx)

	counts := make(map[models.SkillModule]int64, len(submissionSources))
	for _, src := range submissionSources {
		var count int64
		err := db.WithContext(ctx).
			Table(src.submissionTable).
			Where("user_id = ?", userID).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count %s submissions: %w", src.module, err)
		}
		counts[src.module] = count
	}
	return counts, nil
}

func (d *DashboardPostgreSQL) SubmissionCountsByModule(ctx context.Context, tx *gorm.DB) (map[models.SkillModule]repositories.SubmissionCounts, error) {
	db := d.getDB(tx)

	counts := make(map[models.SkillModule]repositories.SubmissionCounts, len(submissionSources))
	for _, src := range submissionSources {
		var total, completed int64
		if err := db.WithContext(ctx).Table(src.submissionTable).Count(&total).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s submissions: %w", src.module, err)
		}
		err := db.WithContext(ctx).
			Table(src.submissionTable).
			Where("is_completed = ?", true).
			Count(&completed).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count completed %s submissions: %w", src.module, err)
		}
		counts[src.module] = repositories.SubmissionCounts{Total: total, Completed: completed}
	}
	return counts, nil
}

type recentSubmissionRow struct {
	ID          uint
	UserEmail   string
	TestTitle   string
	IsCompleted bool
	CreatedAt   time.Time
	SubmittedAt *time.Time
}

// RecentSubmissions returns the latest activity across all four modules,
// newest first. Each module contributes at most perModuleLimit rows.
func (d *DashboardPostgreSQL) RecentSubmissions(ctx context.Context, tx *gorm.DB, perModuleLimit int) ([]repositories.RecentSubmission, error) {
	db := d.getDB(tx)

	if perModuleLimit <= 0 {
		perModuleLimit = 5
	}

	var recent []repositories.RecentSubmission
	for _, src := range submissionSources {
		var rows []recentSubmissionRow
		err := db.WithContext(ctx).
			Table(src.submissionTable+" AS s").
			Select("s.id, u.email AS user_email, t.title AS test_title, s.is_completed, s.created_at, s.submitted_at").
			Joins("JOIN users u ON u.id = s.user_id").
			Joins("JOIN "+src.testTable+" t ON t.id = s.test_id").
			Order("s.created_at DESC").
			Limit(perModuleLimit).
			Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load recent %s submissions: %w", src.module, err)
		}

		for _, row := range rows {
			item := repositories.RecentSubmission{
				ID:          row.ID,
				Module:      src.module,
				UserEmail:   row.UserEmail,
				TestTitle:   row.TestTitle,
				IsCompleted: row.IsCompleted,
				CreatedAt:   row.CreatedAt.UTC().Format(time.RFC3339),
			}
			if row.SubmittedAt != nil {
				s := row.SubmittedAt.UTC().Format(time.RFC3339)
				item.SubmittedAt = &s
			}
			recent = append(recent, item)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt > recent[j].CreatedAt
	})
	return recent, nil
}
