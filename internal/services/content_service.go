package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/ielts-prep/admin-service/internal/events"
	"github.com/ielts-prep/admin-service/internal/models"
	"github.com/ielts-prep/admin-service/internal/repositories"
)

// ContentDescriptor names one hierarchy level for logging and events, and
// carries ID accessors the generic service cannot derive itself.
type ContentDescriptor[P any, C repositories.Child] struct {
	Module          models.SkillModule
	ContainerEntity string
	ChildEntity     string
	ContainerID     func(*P) uint
	ChildID         func(*C) uint
}

type contentService[P any, C repositories.Child] struct {
	repo      repositories.ContentRepository[P, C]
	db        *gorm.DB
	logger    *slog.Logger
	publisher *events.Publisher
	desc      ContentDescriptor[P, C]
}

func NewContentService[P any, C repositories.Child](
	repo repositories.ContentRepository[P, C],
	db *gorm.DB,
	logger *slog.Logger,
	publisher *events.Publisher,
	desc ContentDescriptor[P, C],
) ContentService[P, C] {
	return &contentService[P, C]{
		repo:      repo,
		db:        db,
		logger:    logger,
		publisher: publisher,
		desc:      desc,
	}
}

// withTx executes a function within a transaction
func (s *contentService[P, C]) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *contentService[P, C]) publish(ctx context.Context, entity string, id uint, action events.Action) {
	s.publisher.PublishContentEvent(ctx, events.ContentEvent{
		Module:   s.desc.Module,
		Entity:   entity,
		EntityID: id,
		Action:   action,
	})
}

func (s *contentService[P, C]) CreateContainer(ctx context.Context, container *P) error {
	err := s.withTx(ctx, func(tx *gorm.DB) error {
		return s.repo.CreateContainer(ctx, tx, container)
	})
	if err != nil {
		return fmt.Errorf("failed to create %s %s: %w", s.desc.Module, s.desc.ContainerEntity, err)
	}

	id := s.desc.ContainerID(container)
	s.logger.InfoContext(ctx, "Content container created",
		"module", s.desc.Module, "entity", s.desc.ContainerEntity, "id", id)
	s.publish(ctx, s.desc.ContainerEntity, id, events.ActionCreated)
	return nil
}

func (s *contentService[P, C]) ListContainers(ctx context.Context) ([]P, error) {
	containers, err := s.repo.ListContainers(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s %ss: %w", s.desc.Module, s.desc.ContainerEntity, err)
	}
	return containers, nil
}

func (s *contentService[P, C]) GetContainer(ctx context.Context, id uint) (*P, error) {
	container, err := s.repo.GetContainer(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s %s: %w", s.desc.Module, s.desc.ContainerEntity, err)
	}
	return container, nil
}

func (s *contentService[P, C]) UpdateContainer(ctx context.Context, id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		// Nothing to apply, but a missing id still has to surface.
		_, err := s.GetContainer(ctx, id)
		return err
	}
	err := s.withTx(ctx, func(tx *gorm.DB) error {
		return s.repo.UpdateContainer(ctx, tx, id, updates)
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update %s %s: %w", s.desc.Module, s.desc.ContainerEntity, err)
	}

	s.logger.InfoContext(ctx, "Content container updated",
		"module", s.desc.Module, "entity", s.desc.ContainerEntity, "id", id)
	s.publish(ctx, s.desc.ContainerEntity, id, events.ActionUpdated)
	return nil
}

func (s *contentService[P, C]) DeleteContainer(ctx context.Context, id uint) error {
	err := s.withTx(ctx, func(tx *gorm.DB) error {
		return s.repo.DeleteContainer(ctx, tx, id)
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s %s: %w", s.desc.Module, s.desc.ContainerEntity, err)
	}

	s.logger.InfoContext(ctx, "Content container deleted",
		"module", s.desc.Module, "entity", s.desc.ContainerEntity, "id", id)
	s.publish(ctx, s.desc.ContainerEntity, id, events.ActionDeleted)
	return nil
}

func (s *contentService[P, C]) CreateChild(ctx context.Context, child *C) error {
	err := s.withTx(ctx, func(tx *gorm.DB) error {
		return s.repo.CreateChild(ctx, tx, child)
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to create %s %s: %w", s.desc.Module, s.desc.ChildEntity, err)
	}

	id := s.desc.ChildID(child)
	s.logger.InfoContext(ctx, "Content child created",
		"module", s.desc.Module, "entity", s.desc.ChildEntity, "id", id,
		"container_id", (*child).ParentID())
	s.publish(ctx, s.desc.ChildEntity, id, events.ActionCreated)
	return nil
}

func (s *contentService[P, C]) GetChild(ctx context.Context, id uint) (*C, error) {
	child, err := s.repo.GetChild(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s %s: %w", s.desc.Module, s.desc.ChildEntity, err)
	}
	return child, nil
}

func (s *contentService[P, C]) UpdateChild(ctx context.Context, id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		// Nothing to apply, but a missing id still has to surface.
		_, err := s.GetChild(ctx, id)
		return err
	}
	err := s.withTx(ctx, func(tx *gorm.DB) error {
		return s.repo.UpdateChild(ctx, tx, id, updates)
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update %s %s: %w", s.desc.Module, s.desc.ChildEntity, err)
	}

	s.logger.InfoContext(ctx, "Content child updated",
		"module", s.desc.Module, "entity", s.desc.ChildEntity, "id", id)
	s.publish(ctx, s.desc.ChildEntity, id, events.ActionUpdated)
	return nil
}

func (s *contentService[P, C]) DeleteChild(ctx context.Context, id uint) error {
	err := s.withTx(ctx, func(tx *gorm.DB) error {
		return s.repo.DeleteChild(ctx, tx, id)
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s %s: %w", s.desc.Module, s.desc.ChildEntity, err)
	}

	s.logger.InfoContext(ctx, "Content child deleted",
		"module", s.desc.Module, "entity", s.desc.ChildEntity, "id", id)
	s.publish(ctx, s.desc.ChildEntity, id, events.ActionDeleted)
	return nil
}
