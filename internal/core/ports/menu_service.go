package ports

import (
	"context"

	"github.com/gongcha/admin-api/internal/core/domain"
)

// MenuService defines use-case operations on menu items. Items are attribute
// bags; the service only enforces identity, reserved keys and timestamps.
type MenuService interface {
	CreateItem(ctx context.Context, attrs map[string]any) (*domain.MenuItem, error)
	UpdateItem(ctx context.Context, id string, attrs map[string]any) error
	DeleteItem(ctx context.Context, id string) error
	GetItem(ctx context.Context, id string) (*domain.MenuItem, error)
	ListItems(ctx context.Context) ([]*domain.MenuItem, error)
}
