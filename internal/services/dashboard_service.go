package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ielts-prep/admin-service/internal/cache"
	"github.com/ielts-prep/admin-service/internal/models"
	"github.com/ielts-prep/admin-service/internal/repositories"
	"github.com/redis/go-redis/v9"
)

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
	cache  *cache.CacheHelper
}

func NewDashboardService(repo repositories.Repository, redisClient *redis.Client, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		logger: logger,
		cache:  cache.NewCacheHelper(redisClient, "dashboard:stats:"),
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	err := s.cache.CacheOrExecute(ctx, "overview", &stats, cache.StatsCacheTTL, func() (interface{}, error) {
		return s.computeStats(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *dashboardService) computeStats(ctx context.Context) (*DashboardStats, error) {
	total, active, err := s.repo.Users().Count(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	tests := make(map[models.SkillModule]int64, 4)
	counters := []struct {
		module models.SkillModule
		count  func(context.Context) (int64, error)
	}{
		{models.ModuleSpeaking, func(ctx context.Context) (int64, error) {
			return s.repo.SpeakingTests().CountContainers(ctx, nil)
		}},
		{models.ModuleReading, func(ctx context.Context) (int64, error) {
			return s.repo.ReadingTests().CountContainers(ctx, nil)
		}},
		{models.ModuleWriting, func(ctx context.Context) (int64, error) {
			return s.repo.WritingTests().CountContainers(ctx, nil)
		}},
		{models.ModuleListening, func(ctx context.Context) (int64, error) {
			return s.repo.ListeningTests().CountContainers(ctx, nil)
		}},
	}
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s tests: %w", c.module, err)
		}
		tests[c.module] = n
	}

	byModule, err := s.repo.Dashboard().SubmissionCountsByModule(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}
	submissions := make(map[models.SkillModule]SubmissionStats, len(byModule))
	for module, counts := range byModule {
		submissions[module] = SubmissionStats{
			Total:      counts.Total,
			Completed:  counts.Completed,
			InProgress: counts.Total - counts.Completed,
		}
	}

	return &DashboardStats{
		TotalUsers:  total,
		ActiveUsers: active,
		Tests:       tests,
		Submissions: submissions,
	}, nil
}

func (s *dashboardService) RecentSubmissions(ctx context.Context, limit int) ([]repositories.RecentSubmission, error) {
	recent, err := s.repo.Dashboard().RecentSubmissions(ctx, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent submissions: %w", err)
	}
	return recent, nil
}

func (s *dashboardService) TestsOverview(ctx context.Context) (map[models.SkillModule][]TestSummary, error) {
	overview := make(map[models.SkillModule][]TestSummary, 4)

	speaking, err := s.repo.SpeakingTests().ListContainers(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list speaking tests: %w", err)
	}
	for _, t := range speaking {
		overview[models.ModuleSpeaking] = append(overview[models.ModuleSpeaking],
			TestSummary{ID: t.ID, Title: t.Title, Difficulty: t.Difficulty})
	}

	reading, err := s.repo.ReadingTests().ListContainers(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list reading tests: %w", err)
	}
	for _, t := range reading {
		overview[models.ModuleReading] = append(overview[models.ModuleReading],
			TestSummary{ID: t.ID, Title: t.Title, Difficulty: t.Difficulty})
	}

	writing, err := s.repo.WritingTests().ListContainers(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list writing tests: %w", err)
	}
	for _, t := range writing {
		overview[models.ModuleWriting] = append(overview[models.ModuleWriting],
			TestSummary{ID: t.ID, Title: t.Title, Difficulty: t.Difficulty})
	}

	listening, err := s.repo.ListeningTests().ListContainers(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list listening tests: %w", err)
	}
	for _, t := range listening {
		overview[models.ModuleListening] = append(overview[models.ModuleListening],
			TestSummary{ID: t.ID, Title: t.Title, Difficulty: t.Difficulty})
	}

	return overview, nil
}

var exportHeaders = []string{
	"ID", "Email", "Full Name", "Target Band", "Active", "Created At", "Last Login",
	"Speaking Submissions", "Reading Submissions", "Writing Submissions", "Listening Submissions",
}

// ExportUsers builds an xlsx workbook of all users with their per-module
// submission counts. The caller owns the returned file.
func (s *dashboardService) ExportUsers(ctx context.Context) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Users"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	const pageSize = 200
	row := 2
	for skip := 0; ; skip += pageSize {
		users, err := s.repo.Users().List(ctx, nil, repositories.UserFilters{Skip: skip, Limit: pageSize})
		if err != nil {
			return nil, fmt.Errorf("failed to list users for export: %w", err)
		}
		if len(users) == 0 {
			break
		}

		for _, user := range users {
			counts, err := s.repo.Dashboard().SubmissionCountsByUser(ctx, nil, user.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to count submissions for user %d: %w", user.ID, err)
			}

			fullName := ""
			if user.FullName != nil {
				fullName = *user.FullName
			}
			targetBand := ""
			if user.TargetBandScore != nil {
				targetBand = *user.TargetBandScore
			}
			lastLogin := ""
			if user.LastLogin != nil {
				lastLogin = user.LastLogin.UTC().Format(time.RFC3339)
			}

			values := []interface{}{
				user.ID, user.Email, fullName, targetBand, user.IsActive,
				user.CreatedAt.UTC().Format(time.RFC3339), lastLogin,
				counts[models.ModuleSpeaking], counts[models.ModuleReading],
				counts[models.ModuleWriting], counts[models.ModuleListening],
			}
			for col, value := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return nil, fmt.Errorf("failed to build cell: %w", err)
				}
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return nil, fmt.Errorf("failed to write cell: %w", err)
				}
			}
			row++
		}

		if len(users) < pageSize {
			break
		}
	}

	s.logger.InfoContext(ctx, "User export generated", "rows", row-2)
	return f, nil
}
