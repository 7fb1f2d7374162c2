package ports

import (
	"context"

	"github.com/gongcha/admin-api/internal/core/domain"
)

// CreateStaffInput carries everything needed to provision a staff account:
// the credential record and the staff document it backs.
type CreateStaffInput struct {
	Name            string
	Email           string
	Password        string
	Role            string
	StoreLocation   string
	StoreLocations  []string
	AccessAllStores bool
}

// UpdateStaffInput is the allow-listed staff patch: name, role, isActive,
// storeLocation, storeLocations, accessAllStores. Nothing else is writable.
type UpdateStaffInput struct {
	UID             string
	Name            *string
	Role            *string
	IsActive        *bool
	StoreLocation   *string
	StoreLocations  *[]string
	AccessAllStores *bool
}

// StaffService defines use-case operations on staff accounts.
type StaffService interface {
	// CreateStaff creates the credential first, then the staff document keyed
	// by the credential id. A failed document write triggers a compensating
	// credential delete.
	CreateStaff(ctx context.Context, in CreateStaffInput) (*domain.Staff, error)
	UpdateStaff(ctx context.Context, in UpdateStaffInput) error
	// DeleteStaff removes the credential (missing is tolerated) and the staff
	// document, then cuts off the account's live sessions.
	DeleteStaff(ctx context.Context, uid string, actor Identity) error
	ListStaff(ctx context.Context) ([]*domain.Staff, error)
	// SetupUser registers the authenticated identity into the staff
	// collection if absent. Returns the staff record and whether it was
	// created by this call.
	SetupUser(ctx context.Context, identity Identity, name string) (*domain.Staff, bool, error)
}
