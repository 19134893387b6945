package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ielts-prep/admin-service/internal/auth"
	"github.com/ielts-prep/admin-service/internal/events"
	"github.com/ielts-prep/admin-service/internal/models"
	"github.com/ielts-prep/admin-service/internal/repositories/postgres"
	"github.com/ielts-prep/admin-service/internal/services"
	"github.com/ielts-prep/admin-service/internal/utils"
	"github.com/ielts-prep/admin-service/internal/validator"
)

func setupTestApp(t *testing.T) (*gin.Engine, *auth.Codec) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
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

	slogLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	appLogger := utils.NewSlogLogger(slogLogger)

	codec := auth.NewCodec("test-secret")
	authenticator := auth.NewAuthenticator(codec, auth.AdminIdentity{
		Email:    "admin@example.com",
		Password: "letmein",
	})

	publisher, err := events.NewPublisher(nil, slogLogger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = publisher.Close() })

	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	serviceManager := services.NewServiceManager(services.ServiceManagerConfig{
		DB:            db,
		Repo:          repo,
		Logger:        slogLogger,
		Publisher:     publisher,
		Authenticator: authenticator,
		Codec:         codec,
		TokenTTL:      time.Hour,
	})

	router := gin.New()
	NewHandlerManager(serviceManager, validator.New(), appLogger, authenticator).SetupRoutes(router)
	return router, codec
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func loginAdmin(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/auth/admin/login", "", gin.H{
		"email":    "admin@example.com",
		"password": "letmein",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp services.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestLogin(t *testing.T) {
	router, _ := setupTestApp(t)

	t.Run("valid credentials", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/auth/admin/login", "", gin.H{
			"email":    "admin@example.com",
			"password": "letmein",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp services.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, uint(0), resp.UserID)
		assert.Equal(t, "admin@example.com", resp.Email)
		assert.Equal(t, "Admin", resp.FullName)
		assert.True(t, resp.IsAdmin)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/auth/admin/login", "", gin.H{
			"email":    "admin@example.com",
			"password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"detail":"Invalid admin credentials"}`, w.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/auth/admin/login", "", gin.H{"email": "admin@example.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// The auth gate must reject before any handler or repository code runs.
func TestAdminGate(t *testing.T) {
	router, codec := setupTestApp(t)

	nonAdminToken, err := codec.Issue(auth.Principal{ID: 7, Email: "student@example.com", IsAdmin: false}, time.Hour)
	require.NoError(t, err)

	expiredToken := issueExpired(t, codec)

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"malformed token", "not.a.token", http.StatusUnauthorized},
		{"expired token", expiredToken, http.StatusUnauthorized},
		{"non-admin token", nonAdminToken, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodGet, "/admin/speaking/tests", tt.token, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), "detail")
		})
	}
}

func issueExpired(t *testing.T, codec *auth.Codec) string {
	t.Helper()
	// Issue with a negative ttl so the expiry is already in the past.
	token, err := codec.Issue(auth.Principal{ID: 0, Email: "admin@example.com", IsAdmin: true}, -time.Minute)
	require.NoError(t, err)
	return token
}

func TestSpeakingCRUD(t *testing.T) {
	router, _ := setupTestApp(t)
	token := loginAdmin(t, router)

	// Create a test.
	w := doJSON(t, router, http.MethodPost, "/admin/speaking/tests", token, gin.H{
		"title":      "Part 2 Practice",
		"difficulty": "Intermediate",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		TestID  uint   `json:"test_id"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.TestID)

	// Question with default timings.
	w = doJSON(t, router, http.MethodPost, "/admin/speaking/questions", token, gin.H{
		"test_id":         created.TestID,
		"question_number": 1,
		"prompt":          "Describe a book you recently read.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Read back: question present with defaults applied.
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/admin/speaking/tests/%d", created.TestID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var test models.SpeakingTest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &test))
	require.Len(t, test.Questions, 1)
	assert.Equal(t, models.DefaultPreparationTime, test.Questions[0].PreparationTime)
	assert.Equal(t, models.DefaultResponseTime, test.Questions[0].ResponseTime)

	// Partial update keeps the title.
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/admin/speaking/tests/%d", created.TestID), token, gin.H{
		"difficulty": "Hard",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/admin/speaking/tests/%d", created.TestID), token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &test))
	assert.Equal(t, "Part 2 Practice", test.Title)
	assert.Equal(t, models.DifficultyHard, test.Difficulty)

	// Cascade delete removes the question too.
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/admin/speaking/tests/%d", created.TestID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/admin/speaking/tests/%d", created.TestID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/admin/speaking/questions/%d", test.Questions[0].ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidationErrors(t *testing.T) {
	router, _ := setupTestApp(t)
	token := loginAdmin(t, router)

	t.Run("out-of-enum difficulty", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/admin/speaking/tests", token, gin.H{
			"title":      "Bad",
			"difficulty": "Impossible",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "detail")
	})

	t.Run("missing title", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/admin/writing/tests", token, gin.H{
			"test_type":  "Academic",
			"difficulty": "Easy",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad id parameter", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/admin/speaking/tests/abc", token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReadingHierarchy(t *testing.T) {
	router, _ := setupTestApp(t)
	token := loginAdmin(t, router)

	w := doJSON(t, router, http.MethodPost, "/admin/reading/tests", token, gin.H{
		"title":      "Academic Reading 1",
		"difficulty": "Hard",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var test struct {
		TestID uint `json:"test_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &test))

	w = doJSON(t, router, http.MethodPost, "/admin/reading/passages", token, gin.H{
		"test_id":          test.TestID,
		"passage_number":   1,
		"title":            "The History of Glass",
		"content_markdown": "Glass has been made for millennia...",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var passage struct {
		PassageID uint `json:"passage_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &passage))

	w = doJSON(t, router, http.MethodPost, "/admin/reading/question-packs", token, gin.H{
		"passage_id":         passage.PassageID,
		"question_start":     1,
		"question_end":       5,
		"questions_markdown": "Complete the notes below.",
		"correct_answers":    []string{"furnace", "sand"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var pack struct {
		QuestionPackID uint `json:"question_pack_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pack))

	// Orphaned child creation is rejected.
	w = doJSON(t, router, http.MethodPost, "/admin/reading/passages", token, gin.H{
		"test_id":          9999,
		"passage_number":   1,
		"title":            "Orphan",
		"content_markdown": "x",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Deleting the test takes the whole subtree with it.
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/admin/reading/tests/%d", test.TestID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/admin/reading/passages/%d", passage.PassageID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/admin/reading/question-packs/%d", pack.QuestionPackID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardEndpoints(t *testing.T) {
	router, _ := setupTestApp(t)
	token := loginAdmin(t, router)

	w := doJSON(t, router, http.MethodGet, "/admin/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stats services.DashboardStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Zero(t, stats.TotalUsers)

	w = doJSON(t, router, http.MethodGet, "/admin/dashboard/users", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/admin/dashboard/users/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/admin/dashboard/users/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
}
