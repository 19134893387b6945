package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ielts-prep/admin-service/internal/cache"
	"github.com/ielts-prep/admin-service/internal/models"
	"github.com/ielts-prep/admin-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db          *gorm.DB
	redisClient *redis.Client

	speakingTests     repositories.ContentRepository[models.SpeakingTest, models.SpeakingQuestion]
	readingTests      repositories.ContentRepository[models.ReadingTest, models.ReadingPassage]
	readingPassages   repositories.ContentRepository[models.ReadingPassage, models.ReadingQuestionPack]
	writingTests      repositories.ContentRepository[models.WritingTest, models.WritingTask]
	listeningTests    repositories.ContentRepository[models.ListeningTest, models.ListeningSection]
	listeningSections repositories.ContentRepository[models.ListeningSection, models.ListeningQuestionPack]

	user      repositories.UserRepository
	dashboard repositories.DashboardRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates a new repository manager with all
// sub-repositories wired to their content schemas.
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	repo := &PostgreSQLRepository{
		db:          config.DB,
		redisClient: config.RedisClient,
	}

	repo.speakingTests = NewContentPostgreSQL[models.SpeakingTest, models.SpeakingQuestion](
		config.DB, config.RedisClient, speakingTestSchema())
	repo.readingTests = NewContentPostgreSQL[models.ReadingTest, models.ReadingPassage](
		config.DB, config.RedisClient, readingTestSchema())
	repo.readingPassages = NewContentPostgreSQL[models.ReadingPassage, models.ReadingQuestionPack](
		config.DB, config.RedisClient, readingPassageSchema(config.RedisClient))
	repo.writingTests = NewContentPostgreSQL[models.WritingTest, models.WritingTask](
		config.DB, config.RedisClient, writingTestSchema())
	repo.listeningTests = NewContentPostgreSQL[models.ListeningTest, models.ListeningSection](
		config.DB, config.RedisClient, listeningTestSchema())
	repo.listeningSections = NewContentPostgreSQL[models.ListeningSection, models.ListeningQuestionPack](
		config.DB, config.RedisClient, listeningSectionSchema(config.RedisClient))

	repo.user = NewUserPostgreSQL(config.DB, config.RedisClient)
	repo.dashboard = NewDashboardPostgreSQL(config.DB, config.RedisClient)

	return repo
}

func speakingTestSchema() ContentSchema {
	return ContentSchema{
		CachePrefix:     "speaking:test:",
		ChildForeignKey: "test_id",
		Preloads: []Preload{
			{Association: "Questions", Order: "speaking_questions.question_number ASC, speaking_questions.id ASC"},
		},
	}
}

func readingTestSchema() ContentSchema {
	return ContentSchema{
		CachePrefix:      "reading:test:",
		ChildCachePrefix: "reading:passage:",
		ChildForeignKey:  "test_id",
		Preloads: []Preload{
			{Association: "Passages", Order: "reading_passages.passage_number ASC, reading_passages.id ASC"},
			{Association: "Passages.QuestionPacks", Order: "reading_question_packs.question_start ASC, reading_question_packs.id ASC"},
		},
		DeleteDescendants: func(ctx context.Context, db *gorm.DB, testID uint) error {
			return db.WithContext(ctx).
				Where("passage_id IN (?)", db.WithContext(ctx).
					Model(&models.ReadingPassage{}).Select("id").Where("test_id = ?", testID)).
				Delete(&models.ReadingQuestionPack{}).Error
		},
		DeleteChildDescendants: func(ctx context.Context, db *gorm.DB, passageID uint) error {
			return db.WithContext(ctx).
				Where("passage_id = ?", passageID).
				Delete(&models.ReadingQuestionPack{}).Error
		},
	}
}

func readingPassageSchema(redisClient *redis.Client) ContentSchema {
	testCache := cache.NewCacheHelper(redisClient, "reading:test:")
	return ContentSchema{
		CachePrefix:     "reading:passage:",
		ChildForeignKey: "passage_id",
		Preloads: []Preload{
			{Association: "QuestionPacks", Order: "reading_question_packs.question_start ASC, reading_question_packs.id ASC"},
		},
		// Pack mutations must also drop the cached test detail that nests them.
		InvalidateAncestors: func(ctx context.Context, db *gorm.DB, passageID uint) {
			var passage models.ReadingPassage
			if err := db.WithContext(ctx).Select("id", "test_id").First(&passage, passageID).Error; err != nil {
				cache.SafeInvalidatePattern(ctx, testCache, "*")
				return
			}
			cache.InvalidateContainer(ctx, testCache, passage.TestID)
		},
	}
}

func writingTestSchema() ContentSchema {
	return ContentSchema{
		CachePrefix:     "writing:test:",
		ChildForeignKey: "test_id",
		Preloads: []Preload{
			{Association: "Tasks", Order: "writing_tasks.task_number ASC, writing_tasks.id ASC"},
		},
	}
}

func listeningTestSchema() ContentSchema {
	return ContentSchema{
		CachePrefix:      "listening:test:",
		ChildCachePrefix: "listening:section:",
		ChildForeignKey:  "test_id",
		Preloads: []Preload{
			{Association: "Sections", Order: "listening_sections.section_number ASC, listening_sections.id ASC"},
			{Association: "Sections.QuestionPacks", Order: "listening_question_packs.question_start ASC, listening_question_packs.id ASC"},
		},
		DeleteDescendants: func(ctx context.Context, db *gorm.DB, testID uint) error {
			return db.WithContext(ctx).
				Where("section_id IN (?)", db.WithContext(ctx).
					Model(&models.ListeningSection{}).Select("id").Where("test_id = ?", testID)).
				Delete(&models.ListeningQuestionPack{}).Error
		},
		DeleteChildDescendants: func(ctx context.Context, db *gorm.DB, sectionID uint) error {
			return db.WithContext(ctx).
				Where("section_id = ?", sectionID).
				Delete(&models.ListeningQuestionPack{}).Error
		},
	}
}

func listeningSectionSchema(redisClient *redis.Client) ContentSchema {
	testCache := cache.NewCacheHelper(redisClient, "listening:test:")
	return ContentSchema{
		CachePrefix:     "listening:section:",
		ChildForeignKey: "section_id",
		Preloads: []Preload{
			{Association: "QuestionPacks", Order: "listening_question_packs.question_start ASC, listening_question_packs.id ASC"},
		},
		InvalidateAncestors: func(ctx context.Context, db *gorm.DB, sectionID uint) {
			var section models.ListeningSection
			if err := db.WithContext(ctx).Select("id", "test_id").First(&section, sectionID).Error; err != nil {
				cache.SafeInvalidatePattern(ctx, testCache, "*")
				return
			}
			cache.InvalidateContainer(ctx, testCache, section.TestID)
		},
	}
}

func (r *PostgreSQLRepository) SpeakingTests() repositories.ContentRepository[models.SpeakingTest, models.SpeakingQuestion] {
	return r.speakingTests
}

func (r *PostgreSQLRepository) ReadingTests() repositories.ContentRepository[models.ReadingTest, models.ReadingPassage] {
	return r.readingTests
}

func (r *PostgreSQLRepository) ReadingPassages() repositories.ContentRepository[models.ReadingPassage, models.ReadingQuestionPack] {
	return r.readingPassages
}

func (r *PostgreSQLRepository) WritingTests() repositories.ContentRepository[models.WritingTest, models.WritingTask] {
	return r.writingTests
}

func (r *PostgreSQLRepository) ListeningTests() repositories.ContentRepository[models.ListeningTest, models.ListeningSection] {
	return r.listeningTests
}

func (r *PostgreSQLRepository) ListeningSections() repositories.ContentRepository[models.ListeningSection, models.ListeningQuestionPack] {
	return r.listeningSections
}

func (r *PostgreSQLRepository) Users() repositories.UserRepository {
	return r.user
}

func (r *PostgreSQLRepository) Dashboard() repositories.DashboardRepository {
	return r.dashboard
}

// Ping verifies database connectivity for health checks.
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
