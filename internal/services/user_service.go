package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/ielts-prep/admin-service/internal/models"
	"github.com/ielts-prep/admin-service/internal/repositories"
)

type userService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewUserService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) UserService {
	return &userService{repo: repo, db: db, logger: logger}
}

func (s *userService) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	users, err := s.repo.Users().List(ctx, nil, repositories.UserFilters{Skip: skip, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*UserDetail, error) {
	user, err := s.repo.Users().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	counts, err := s.repo.Dashboard().SubmissionCountsByUser(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count user submissions: %w", err)
	}

	return &UserDetail{User: *user, SubmissionCounts: counts}, nil
}

func (s *userService) SetActive(ctx context.Context, id uint, active bool) error {
	err := s.repo.Users().SetActive(ctx, nil, id, active)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update user status: %w", err)
	}
	s.logger.InfoContext(ctx, "User status changed", "user_id", id, "is_active", active)
	return nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Users().Delete(ctx, tx, id)
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.InfoContext(ctx, "User deleted", "user_id", id)
	return nil
}
