package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gongcha/admin-api/internal/core/domain"
	"github.com/gongcha/admin-api/internal/core/ports"
)

type MenuService struct {
	repo ports.MenuRepository
	log  zerolog.Logger
}

func NewMenuService(repo ports.MenuRepository, log zerolog.Logger) *MenuService {
	return &MenuService{repo: repo, log: log}
}

// CreateItem stores the attribute bag as-is, minus reserved keys, with a
// generated id and timestamps.
func (s *MenuService) CreateItem(ctx context.Context, attrs map[string]any) (*domain.MenuItem, error) {
	now := time.Now().UTC()
	item := &domain.MenuItem{
		ID:         generateID("itm"),
		Attributes: domain.FilterMenuAttributes(attrs),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, err
	}

	s.log.Info().Str("item_id", item.ID).Msg("menu item created")
	return item, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, id string, attrs map[string]any) error {
	filtered := domain.FilterMenuAttributes(attrs)
	if len(filtered) == 0 {
		return nil
	}

	if err := s.repo.UpdateAttributes(ctx, id, filtered); err != nil {
		return err
	}

	s.log.Info().Str("item_id", id).Int("fields", len(filtered)).Msg("menu item updated")
	return nil
}

func (s *MenuService) DeleteItem(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("item_id", id).Msg("menu item deleted")
	return nil
}

func (s *MenuService) GetItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MenuService) ListItems(ctx context.Context) ([]*domain.MenuItem, error) {
	return s.repo.List(ctx)
}
