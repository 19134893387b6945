package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ielts-prep/admin-service/internal/cache"
	"github.com/ielts-prep/admin-service/internal/models"
	"github.com/ielts-prep/admin-service/internal/repositories"
)

type UserPostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewUserPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.UserRepository {
	return &UserPostgreSQL{
		db:    db,
		cache: cache.NewCacheHelper(redisClient, "users:"),
	}
}

func (u *UserPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return u.db
}

func (u *UserPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.UserFilters) ([]models.User, error) {
	db := u.getDB(tx)

	limit := filters.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var users []models.User
	err := db.WithContext(ctx).
		Order("created_at DESC").
		Offset(filters.Skip).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := u.getDB(tx).WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) SetActive(ctx context.Context, tx *gorm.DB, id uint, active bool) error {
	result := u.getDB(tx).WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return fmt.Errorf("failed to update user status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, repositories.ErrNotFound)
	}
	cache.SafeInvalidatePattern(ctx, u.cache, "*")
	return nil
}

// Delete removes the user and their submissions in every skill module inside
// one transaction.
func (u *UserPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := u.getDB(tx)

	for _, model := range []interface{}{
		&models.SpeakingSubmission{},
		&models.ReadingSubmission{},
		&models.WritingSubmission{},
		&models.ListeningSubmission{},
	} {
		if err := db.WithContext(ctx).Where("user_id = ?", id).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to delete user submissions: %w", err)
		}
	}

	result := db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, repositories.ErrNotFound)
	}
	cache.SafeInvalidatePattern(ctx, u.cache, "*")
	return nil
}

func (u *UserPostgreSQL) Count(ctx context.Context, tx *gorm.DB) (int64, int64, error) {
	db := u.getDB(tx)

	var total, active int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count users: %w", err)
	}
	if err := db.WithContext(ctx).Model(&models.User{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count active users: %w", err)
	}
	return total, active, nil
}
