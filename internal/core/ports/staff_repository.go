package ports

import (
	"context"

	"github.com/gongcha/admin-api/internal/core/domain"
)

// StaffRepository defines persistence operations for staff documents.
type StaffRepository interface {
	Insert(ctx context.Context, s *domain.Staff) error
	FindByUID(ctx context.Context, uid string) (*domain.Staff, error)
	List(ctx context.Context) ([]*domain.Staff, error)
	// UpdateFields applies a $set patch of pre-filtered fields and stamps
	// updated_at.
	UpdateFields(ctx context.Context, uid string, fields map[string]any) error
	Delete(ctx context.Context, uid string) error
}
