package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ielts-prep/admin-service/internal/models"
	"github.com/ielts-prep/admin-service/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.SpeakingTest{}, &models.SpeakingQuestion{},
		&models.ReadingTest{}, &models.ReadingPassage{}, &models.ReadingQuestionPack{},
		&models.WritingTest{}, &models.WritingTask{},
		&models.ListeningTest{}, &models.ListeningSection{}, &models.ListeningQuestionPack{},
		&models.User{},
		&models.SpeakingSubmission{}, &models.ReadingSubmission{},
		&models.WritingSubmission{}, &models.ListeningSubmission{},
	))
	return db
}

func setupRepository(t *testing.T) (repositories.Repository, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewPostgreSQLRepository(RepositoryConfig{DB: db}), db
}

func setupCachedRepository(t *testing.T) (repositories.Repository, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewPostgreSQLRepository(RepositoryConfig{DB: db, RedisClient: client}), db
}

func seedReadingTest(t *testing.T, repo repositories.Repository) (testID, passageID, packID uint) {
	t.Helper()
	ctx := context.Background()

	test := &models.ReadingTest{Title: "Academic Reading 1", Difficulty: models.DifficultyIntermediate}
	require.NoError(t, repo.ReadingTests().CreateContainer(ctx, nil, test))

	passage := &models.ReadingPassage{
		TestID:          test.ID,
		PassageNumber:   1,
		Title:           "The History of Glass",
		ContentMarkdown: "Glass has been made for millennia...",
	}
	require.NoError(t, repo.ReadingTests().CreateChild(ctx, nil, passage))

	pack := &models.ReadingQuestionPack{
		PassageID:         passage.ID,
		QuestionStart:     1,
		QuestionEnd:       5,
		QuestionsMarkdown: "Complete the notes below.",
		OrderMatters:      true,
	}
	require.NoError(t, repo.ReadingPassages().CreateChild(ctx, nil, pack))

	return test.ID, passage.ID, pack.ID
}

func TestContentRepository_ContainerDeleteCascades(t *testing.T) {
	repo, db := setupRepository(t)
	ctx := context.Background()

	testID, _, _ := seedReadingTest(t, repo)

	// A sibling test with its own subtree must survive the cascade.
	otherID, otherPassageID, otherPackID := seedReadingTest(t, repo)

	require.NoError(t, repo.ReadingTests().DeleteContainer(ctx, nil, testID))

	var passages, packs int64
	require.NoError(t, db.Model(&models.ReadingPassage{}).Where("test_id = ?", testID).Count(&passages).Error)
	require.NoError(t, db.Model(&models.ReadingQuestionPack{}).
		Where("passage_id IN (?)", db.Model(&models.ReadingPassage{}).Select("id").Where("test_id = ?", testID)).
		Count(&packs).Error)
	assert.Zero(t, passages, "passages should be removed with their test")
	assert.Zero(t, packs, "question packs should be removed with their test")

	_, err := repo.ReadingTests().GetContainer(ctx, nil, testID)
	assert.True(t, repositories.IsNotFoundError(err))

	other, err := repo.ReadingTests().GetContainer(ctx, nil, otherID)
	require.NoError(t, err)
	require.Len(t, other.Passages, 1)
	assert.Equal(t, otherPassageID, other.Passages[0].ID)
	require.Len(t, other.Passages[0].QuestionPacks, 1)
	assert.Equal(t, otherPackID, other.Passages[0].QuestionPacks[0].ID)
}

func TestContentRepository_ChildDeleteCascades(t *testing.T) {
	repo, db := setupRepository(t)
	ctx := context.Background()

	testID, passageID, _ := seedReadingTest(t, repo)

	require.NoError(t, repo.ReadingTests().DeleteChild(ctx, nil, passageID))

	var packs int64
	require.NoError(t, db.Model(&models.ReadingQuestionPack{}).Where("passage_id = ?", passageID).Count(&packs).Error)
	assert.Zero(t, packs, "question packs should be removed with their passage")

	test, err := repo.ReadingTests().GetContainer(ctx, nil, testID)
	require.NoError(t, err)
	assert.Empty(t, test.Passages)
}

func TestContentRepository_ChildrenOrderedBySequence(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	test := &models.SpeakingTest{Title: "Part 2 Practice", Difficulty: models.DifficultyEasy}
	require.NoError(t, repo.SpeakingTests().CreateContainer(ctx, nil, test))

	// Insert out of order; reads must come back sorted by question number.
	for _, n := range []int{3, 1, 2} {
		q := &models.SpeakingQuestion{
			TestID:          test.ID,
			QuestionNumber:  n,
			Prompt:          fmt.Sprintf("Describe a place you visited (%d).", n),
			PreparationTime: models.DefaultPreparationTime,
			ResponseTime:    models.DefaultResponseTime,
		}
		require.NoError(t, repo.SpeakingTests().CreateChild(ctx, nil, q))
	}

	got, err := repo.SpeakingTests().GetContainer(ctx, nil, test.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 3)
	for i, q := range got.Questions {
		assert.Equal(t, i+1, q.QuestionNumber)
	}
}

func TestContentRepository_CreateChildRequiresContainer(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	task := &models.WritingTask{
		TestID:           9999,
		TaskNumber:       1,
		TaskType:         "Essay",
		PromptMarkdown:   "Some people believe...",
		MinWords:         250,
		TimeLimitMinutes: models.DefaultTimeLimitMinutes,
	}
	err := repo.WritingTests().CreateChild(ctx, nil, task)
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestContentRepository_PartialUpdatePreservesOtherFields(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	desc := "Timed mock test"
	test := &models.ListeningTest{Title: "Listening Mock 3", Difficulty: models.DifficultyHard, Description: &desc}
	require.NoError(t, repo.ListeningTests().CreateContainer(ctx, nil, test))

	err := repo.ListeningTests().UpdateContainer(ctx, nil, test.ID, map[string]interface{}{
		"title": "Listening Mock 3 (revised)",
	})
	require.NoError(t, err)

	got, err := repo.ListeningTests().GetContainer(ctx, nil, test.ID)
	require.NoError(t, err)
	assert.Equal(t, "Listening Mock 3 (revised)", got.Title)
	assert.Equal(t, models.DifficultyHard, got.Difficulty)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
}

func TestContentRepository_UpdateMissingContainer(t *testing.T) {
	repo, _ := setupRepository(t)

	err := repo.WritingTests().UpdateContainer(context.Background(), nil, 4242, map[string]interface{}{
		"title": "no such test",
	})
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestContentRepository_TransactionRollback(t *testing.T) {
	repo, db := setupRepository(t)
	ctx := context.Background()

	testID, _, _ := seedReadingTest(t, repo)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := repo.ReadingTests().DeleteContainer(ctx, tx, testID); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	got, err := repo.ReadingTests().GetContainer(ctx, nil, testID)
	require.NoError(t, err)
	assert.Len(t, got.Passages, 1, "rolled-back delete must leave the subtree intact")
}

func TestContentRepository_CascadeDeleteDropsCachedChildren(t *testing.T) {
	repo, db := setupCachedRepository(t)
	ctx := context.Background()

	testID, passageID, _ := seedReadingTest(t, repo)

	// Warm the passage-level cache through the middle repository.
	warmed, err := repo.ReadingPassages().GetContainer(ctx, nil, passageID)
	require.NoError(t, err)
	require.Len(t, warmed.QuestionPacks, 1)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.ReadingTests().DeleteContainer(ctx, tx, testID)
	}))

	_, err = repo.ReadingPassages().GetContainer(ctx, nil, passageID)
	assert.True(t, repositories.IsNotFoundError(err), "deleted passage must not be served from cache")
}

func TestContentRepository_ChildDeleteDropsCachedEntry(t *testing.T) {
	repo, _ := setupCachedRepository(t)
	ctx := context.Background()

	_, passageID, _ := seedReadingTest(t, repo)

	_, err := repo.ReadingPassages().GetContainer(ctx, nil, passageID)
	require.NoError(t, err)

	require.NoError(t, repo.ReadingTests().DeleteChild(ctx, nil, passageID))

	_, err = repo.ReadingPassages().GetContainer(ctx, nil, passageID)
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestContentRepository_ChildUpdateVisibleAtNextLevel(t *testing.T) {
	repo, _ := setupCachedRepository(t)
	ctx := context.Background()

	_, passageID, _ := seedReadingTest(t, repo)

	warmed, err := repo.ReadingPassages().GetContainer(ctx, nil, passageID)
	require.NoError(t, err)
	require.Equal(t, "The History of Glass", warmed.Title)

	require.NoError(t, repo.ReadingTests().UpdateChild(ctx, nil, passageID, map[string]interface{}{
		"title": "The Chemistry of Glass",
	}))

	got, err := repo.ReadingPassages().GetContainer(ctx, nil, passageID)
	require.NoError(t, err)
	assert.Equal(t, "The Chemistry of Glass", got.Title)
}

func TestContentRepository_CreateChildParentDeletedMidFlight(t *testing.T) {
	// Foreign keys on, so a parent delete landing between the existence
	// check and the insert surfaces as a constraint violation.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.SpeakingTest{}, &models.SpeakingQuestion{}))
	repo := NewPostgreSQLRepository(RepositoryConfig{DB: db})
	ctx := context.Background()

	test := &models.SpeakingTest{Title: "Part 1 Practice", Difficulty: models.DifficultyEasy}
	require.NoError(t, repo.SpeakingTests().CreateContainer(ctx, nil, test))

	// Delete the container after CreateChild has checked it but before the
	// insert runs.
	err = db.Callback().Create().Before("gorm:create").Register("drop_parent_mid_create", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*models.SpeakingQuestion); !ok {
			return
		}
		tx.Session(&gorm.Session{NewDB: true}).Exec("DELETE FROM speaking_tests WHERE id = ?", test.ID)
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Callback().Create().Remove("drop_parent_mid_create") })

	q := &models.SpeakingQuestion{
		TestID:          test.ID,
		QuestionNumber:  1,
		Prompt:          "Tell me about your hometown.",
		PreparationTime: models.DefaultPreparationTime,
		ResponseTime:    models.DefaultResponseTime,
	}
	err = repo.SpeakingTests().CreateChild(ctx, nil, q)
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestUserRepository_DeleteRemovesSubmissions(t *testing.T) {
	repo, db := setupRepository(t)
	ctx := context.Background()

	user := models.User{Email: "student@example.com", IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.SpeakingSubmission{Submission: models.Submission{UserID: user.ID, TestID: 1}}).Error)
	require.NoError(t, db.Create(&models.ReadingSubmission{Submission: models.Submission{UserID: user.ID, TestID: 1, IsCompleted: true}}).Error)

	require.NoError(t, repo.Users().Delete(ctx, nil, user.ID))

	var speaking, reading int64
	require.NoError(t, db.Model(&models.SpeakingSubmission{}).Where("user_id = ?", user.ID).Count(&speaking).Error)
	require.NoError(t, db.Model(&models.ReadingSubmission{}).Where("user_id = ?", user.ID).Count(&reading).Error)
	assert.Zero(t, speaking)
	assert.Zero(t, reading)

	_, err := repo.Users().GetByID(ctx, nil, user.ID)
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestDashboardRepository_RecentSubmissionsNewestFirst(t *testing.T) {
	repo, db := setupRepository(t)
	ctx := context.Background()

	user := models.User{Email: "student@example.com", IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.SpeakingTest{Title: "Speaking A", Difficulty: models.DifficultyEasy}).Error)
	require.NoError(t, db.Create(&models.ReadingTest{Title: "Reading B", Difficulty: models.DifficultyEasy}).Error)

	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	require.NoError(t, db.Create(&models.SpeakingSubmission{Submission: models.Submission{UserID: user.ID, TestID: 1, CreatedAt: older}}).Error)
	require.NoError(t, db.Create(&models.ReadingSubmission{Submission: models.Submission{UserID: user.ID, TestID: 1, IsCompleted: true, CreatedAt: newer}}).Error)

	recent, err := repo.Dashboard().RecentSubmissions(ctx, nil, 5)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, models.ModuleReading, recent[0].Module)
	assert.Equal(t, "Reading B", recent[0].TestTitle)
	assert.Equal(t, models.ModuleSpeaking, recent[1].Module)
	assert.Equal(t, "student@example.com", recent[1].UserEmail)
}
