package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gongcha/admin-api/internal/core/domain"
	"github.com/gongcha/admin-api/internal/core/ports"
)

type StoreService struct {
	repo ports.StoreRepository
	log  zerolog.Logger
}

func NewStoreService(repo ports.StoreRepository, log zerolog.Logger) *StoreService {
	return &StoreService{repo: repo, log: log}
}

// CreateStore validates the caller-chosen id and inserts the document keyed
// by it. The insert itself is the uniqueness check: a duplicate key surfaces
// as domain.ErrStoreExists and the existing document is never touched.
func (s *StoreService) CreateStore(ctx context.Context, in ports.CreateStoreInput) (*domain.Store, error) {
	if !domain.ValidStoreID(in.ID) {
		return nil, fmt.Errorf("%w: %q must match ^[a-z0-9_-]+$", domain.ErrInvalidStoreID, in.ID)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	var coords *domain.Coordinates
	if in.Lat != nil && in.Lng != nil {
		coords = &domain.Coordinates{Lat: *in.Lat, Lng: *in.Lng}
	}

	now := time.Now().UTC()
	store := &domain.Store{
		ID:             in.ID,
		Name:           in.Name,
		Address:        in.Address,
		Coordinates:    coords,
		OpenHours:      in.OpenHours,
		StatusOverride: in.StatusOverride,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, store); err != nil {
		return nil, err
	}

	s.log.Info().Str("store_id", store.ID).Msg("store created")
	return store, nil
}

// UpdateStore applies the allow-listed patch. The store id is immutable.
func (s *StoreService) UpdateStore(ctx context.Context, in ports.UpdateStoreInput) error {
	fields := make(map[string]any)
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	if in.Lat != nil && in.Lng != nil {
		fields["coordinates"] = domain.Coordinates{Lat: *in.Lat, Lng: *in.Lng}
	}
	if in.OpenHours != nil {
		fields["open_hours"] = *in.OpenHours
	}
	if in.StatusOverride != nil {
		fields["status_override"] = *in.StatusOverride
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.repo.UpdateFields(ctx, in.ID, fields); err != nil {
		return err
	}

	s.log.Info().Str("store_id", in.ID).Int("fields", len(fields)).Msg("store updated")
	return nil
}

func (s *StoreService) GetStore(ctx context.Context, id string) (*domain.Store, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *StoreService) ListStores(ctx context.Context) ([]*domain.Store, error) {
	return s.repo.List(ctx)
}
