package ports

import (
	"context"
	"time"

	"github.com/gongcha/admin-api/internal/core/domain"
)

// ListMembersFilter carries query parameters for listing members.
type ListMembersFilter struct {
	Tier   string // optional: filter by loyalty tier
	Search string // optional: partial match on name or phone_number
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 100 by service)
}

// MemberRepository defines persistence operations for loyalty members.
type MemberRepository interface {
	FindByUID(ctx context.Context, uid string) (*domain.Member, error)
	// List returns a page of members matching filter and the total count.
	List(ctx context.Context, filter ListMembersFilter) ([]*domain.Member, int64, error)
	// UpdateFields applies a $set patch of pre-filtered fields and stamps
	// updated_at. Fields must already be allow-listed by the caller.
	UpdateFields(ctx context.Context, uid string, fields map[string]any) error
	// UpdatePoints sets both balances plus the audit stamp in one write.
	UpdatePoints(ctx context.Context, uid string, current, lifetime int64, editorUID string, at time.Time) error
	// AppendVoucher adds a voucher via array-union so concurrent grants to
	// the same member never clobber each other.
	AppendVoucher(ctx context.Context, uid string, v domain.Voucher) error
	Delete(ctx context.Context, uid string) error
}
