package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ielts-prep/admin-service/internal/cache"
	"github.com/ielts-prep/admin-service/internal/repositories"
)

// Preload names a child association to eager-load, ordered by its sequence
// column.
type Preload struct {
	Association string
	Order       string
}

// ContentSchema describes one (container, child) level of a content
// hierarchy so a single repository implementation can serve every skill
// module.
type ContentSchema struct {
	// CachePrefix namespaces cache keys, e.g. "reading:test:".
	CachePrefix string
	// ChildCachePrefix names the child's own container cache when the child
	// is itself a container at the next level (e.g. "reading:passage:").
	// Child mutations and cascade deletes through this repository purge it,
	// so reads through the next level never see pre-mutation state. Empty
	// when children are leaves.
	ChildCachePrefix string
	// ChildForeignKey is the FK column on the child table, e.g. "test_id".
	ChildForeignKey string
	// Preloads are the associations GetContainer loads, in nesting order.
	Preloads []Preload
	// DeleteDescendants removes rows below the direct children (grandchildren
	// in three-level modules). Nil for two-level modules.
	DeleteDescendants func(ctx context.Context, db *gorm.DB, containerID uint) error
	// DeleteChildDescendants removes rows below one child. Nil when children
	// are leaves.
	DeleteChildDescendants func(ctx context.Context, db *gorm.DB, childID uint) error
	// InvalidateAncestors drops cached reads of levels above this one after a
	// mutation under containerID. Nil for top-level containers.
	InvalidateAncestors func(ctx context.Context, db *gorm.DB, containerID uint)
}

// ContentPostgreSQL implements repositories.ContentRepository for one level
// of a skill module's hierarchy, with cache-aside reads.
type ContentPostgreSQL[P any, C repositories.Child] struct {
	db         *gorm.DB
	schema     ContentSchema
	cache      *cache.CacheHelper
	childCache *cache.CacheHelper
}

func NewContentPostgreSQL[P any, C repositories.Child](db *gorm.DB, redisClient *redis.Client, schema ContentSchema) repositories.ContentRepository[P, C] {
	repo := &ContentPostgreSQL[P, C]{
		db:     db,
		schema: schema,
		cache:  cache.NewCacheHelper(redisClient, schema.CachePrefix),
	}
	if schema.ChildCachePrefix != "" {
		repo.childCache = cache.NewCacheHelper(redisClient, schema.ChildCachePrefix)
	}
	return repo
}

// getDB returns the transaction DB if provided, otherwise the default DB
func (r *ContentPostgreSQL[P, C]) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *ContentPostgreSQL[P, C]) CreateContainer(ctx context.Context, tx *gorm.DB, container *P) error {
	if err := r.getDB(tx).WithContext(ctx).Create(container).Error; err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, r.cache, "list*")
	return nil
}

func (r *ContentPostgreSQL[P, C]) ListContainers(ctx context.Context, tx *gorm.DB) ([]P, error) {
	var containers []P
	err := r.cache.CacheOrExecute(ctx, "list", &containers, cache.ContentCacheTTL, func() (interface{}, error) {
		var rows []P
		if err := r.getDB(tx).WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to list containers: %w", err)
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return containers, nil
}

func (r *ContentPostgreSQL[P, C]) GetContainer(ctx context.Context, tx *gorm.DB, id uint) (*P, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var container P

	err := r.cache.CacheOrExecute(ctx, cacheKey, &container, cache.ContentCacheTTL, func() (interface{}, error) {
		query := r.getDB(tx).WithContext(ctx)
		for _, p := range r.schema.Preloads {
			if p.Order != "" {
				order := p.Order
				query = query.Preload(p.Association, func(db *gorm.DB) *gorm.DB {
					return db.Order(order)
				})
			} else {
				query = query.Preload(p.Association)
			}
		}

		var row P
		if err := query.First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("container %d: %w", id, repositories.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to get container: %w", err)
		}
		return &row, nil
	})
	if err != nil {
		return nil, err
	}
	return &container, nil
}

func (r *ContentPostgreSQL[P, C]) UpdateContainer(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error {
	result := r.getDB(tx).WithContext(ctx).Model(new(P)).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update container: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("container %d: %w", id, repositories.ErrNotFound)
	}
	cache.InvalidateContainer(ctx, r.cache, id)
	return nil
}

// DeleteContainer removes the container and every descendant. Pass the
// service transaction so a mid-cascade failure rolls everything back.
func (r *ContentPostgreSQL[P, C]) DeleteContainer(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)

	if r.schema.DeleteDescendants != nil {
		if err := r.schema.DeleteDescendants(ctx, db, id); err != nil {
			return fmt.Errorf("failed to delete descendants: %w", err)
		}
	}
	// Children that are containers one level down keep their own cached
	// reads; collect their ids before the rows disappear.
	if err := r.invalidateCachedChildren(ctx, db, id); err != nil {
		return err
	}
	if err := db.WithContext(ctx).Where(r.schema.ChildForeignKey+" = ?", id).Delete(new(C)).Error; err != nil {
		return fmt.Errorf("failed to delete children: %w", err)
	}

	result := db.WithContext(ctx).Delete(new(P), id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete container: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("container %d: %w", id, repositories.ErrNotFound)
	}

	cache.InvalidateContainer(ctx, r.cache, id)
	return nil
}

func (r *ContentPostgreSQL[P, C]) invalidateCachedChildren(ctx context.Context, db *gorm.DB, containerID uint) error {
	if r.childCache == nil {
		return nil
	}
	var childIDs []uint
	if err := db.WithContext(ctx).Model(new(C)).
		Where(r.schema.ChildForeignKey+" = ?", containerID).
		Pluck("id", &childIDs).Error; err != nil {
		return fmt.Errorf("failed to list children for cache invalidation: %w", err)
	}
	keys := make([]string, len(childIDs))
	for i, childID := range childIDs {
		keys[i] = fmt.Sprintf("id:%d", childID)
	}
	cache.SafeDelete(ctx, r.childCache, keys...)
	cache.SafeInvalidatePattern(ctx, r.childCache, "list*")
	return nil
}

// CreateChild inserts a child after confirming its container exists in the
// same transaction. A container delete committing between the check and the
// insert surfaces as a foreign-key violation, which maps to the same
// NotFound.
func (r *ContentPostgreSQL[P, C]) CreateChild(ctx context.Context, tx *gorm.DB, child *C) error {
	db := r.getDB(tx)
	parentID := (*child).ParentID()

	var parent P
	if err := db.WithContext(ctx).Select("id").First(&parent, parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("container %d: %w", parentID, repositories.ErrNotFound)
		}
		return fmt.Errorf("failed to check container: %w", err)
	}

	if err := db.WithContext(ctx).Create(child).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("container %d: %w", parentID, repositories.ErrNotFound)
		}
		return fmt.Errorf("failed to create child: %w", err)
	}
	r.invalidateUpward(ctx, db, parentID)
	if r.childCache != nil {
		cache.SafeInvalidatePattern(ctx, r.childCache, "list*")
	}
	return nil
}

func (r *ContentPostgreSQL[P, C]) invalidateUpward(ctx context.Context, db *gorm.DB, containerID uint) {
	cache.InvalidateContainer(ctx, r.cache, containerID)
	if r.schema.InvalidateAncestors != nil {
		r.schema.InvalidateAncestors(ctx, db, containerID)
	}
}

// invalidateChildEntry drops the child's own cached reads when the child is
// a container at the next level.
func (r *ContentPostgreSQL[P, C]) invalidateChildEntry(ctx context.Context, childID uint) {
	if r.childCache != nil {
		cache.InvalidateContainer(ctx, r.childCache, childID)
	}
}

func (r *ContentPostgreSQL[P, C]) GetChild(ctx context.Context, tx *gorm.DB, id uint) (*C, error) {
	var child C
	if err := r.getDB(tx).WithContext(ctx).First(&child, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("child %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	return &child, nil
}

func (r *ContentPostgreSQL[P, C]) UpdateChild(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error {
	db := r.getDB(tx)

	var child C
	if err := db.WithContext(ctx).First(&child, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("child %d: %w", id, repositories.ErrNotFound)
		}
		return fmt.Errorf("failed to get child: %w", err)
	}

	if err := db.WithContext(ctx).Model(new(C)).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update child: %w", err)
	}
	r.invalidateUpward(ctx, db, child.ParentID())
	r.invalidateChildEntry(ctx, id)
	return nil
}

func (r *ContentPostgreSQL[P, C]) DeleteChild(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)

	var child C
	if err := db.WithContext(ctx).First(&child, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("child %d: %w", id, repositories.ErrNotFound)
		}
		return fmt.Errorf("failed to get child: %w", err)
	}

	if r.schema.DeleteChildDescendants != nil {
		if err := r.schema.DeleteChildDescendants(ctx, db, id); err != nil {
			return fmt.Errorf("failed to delete child descendants: %w", err)
		}
	}
	if err := db.WithContext(ctx).Delete(new(C), id).Error; err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	r.invalidateUpward(ctx, db, child.ParentID())
	r.invalidateChildEntry(ctx, id)
	return nil
}

func (r *ContentPostgreSQL[P, C]) CountContainers(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := r.getDB(tx).WithContext(ctx).Model(new(P)).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count containers: %w", err)
	}
	return count, nil
}
