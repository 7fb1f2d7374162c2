package ports

import (
	"context"

	"github.com/gongcha/admin-api/internal/core/domain"
)

// MenuRepository defines persistence operations for menu items.
type MenuRepository interface {
	Insert(ctx context.Context, item *domain.MenuItem) error
	FindByID(ctx context.Context, id string) (*domain.MenuItem, error)
	List(ctx context.Context) ([]*domain.MenuItem, error)
	// UpdateAttributes $sets the given attributes and stamps updated_at.
	// Attributes must already have reserved keys stripped.
	UpdateAttributes(ctx context.Context, id string, attrs map[string]any) error
	Delete(ctx context.Context, id string) error
}
