package ports

import (
	"context"

	"github.com/gongcha/admin-api/internal/core/domain"
)

// CreateStoreInput carries a new store. ID is caller-chosen and immutable.
type CreateStoreInput struct {
	ID             string
	Name           string
	Address        string
	Lat            *float64
	Lng            *float64
	OpenHours      string
	StatusOverride string
}

// UpdateStoreInput is the allow-listed store patch. The store id itself is
// not patchable.
type UpdateStoreInput struct {
	ID             string
	Name           *string
	Address        *string
	Lat            *float64
	Lng            *float64
	OpenHours      *string
	StatusOverride *string
	IsActive       *bool
}

// StoreService defines use-case operations on stores.
type StoreService interface {
	CreateStore(ctx context.Context, in CreateStoreInput) (*domain.Store, error)
	UpdateStore(ctx context.Context, in UpdateStoreInput) error
	GetStore(ctx context.Context, id string) (*domain.Store, error)
	ListStores(ctx context.Context) ([]*domain.Store, error)
}
