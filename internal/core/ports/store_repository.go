package ports

import (
	"context"

	"github.com/gongcha/admin-api/internal/core/domain"
)

// StoreRepository defines persistence operations for stores.
type StoreRepository interface {
	// Insert writes the store keyed by its id. The insert is the uniqueness
	// check: a duplicate key maps to domain.ErrStoreExists and leaves the
	// existing document untouched.
	Insert(ctx context.Context, s *domain.Store) error
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	List(ctx context.Context) ([]*domain.Store, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
}
