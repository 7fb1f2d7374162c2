package ports

import (
	"context"
	"time"

	"github.com/gongcha/admin-api/internal/core/domain"
)

// UpdateMemberInput carries a partial member edit. Nil pointers mean "field
// absent"; any field outside this struct is dropped before it gets here.
type UpdateMemberInput struct {
	UID         string
	Name        *string
	Tier        *string
	PhoneNumber *string
	Role        *string
}

// EditPointsInput carries a point balance edit plus the acting admin.
type EditPointsInput struct {
	UID            string
	CurrentPoints  int64
	LifetimePoints int64
	Editor         Identity
}

// GrantVoucherInput carries a voucher grant. The voucher id is generated by
// the service; the caller never supplies one.
type GrantVoucherInput struct {
	UID       string
	RewardID  string
	Title     string
	Code      string
	Type      string
	ExpiresAt time.Time
	Actor     Identity
}

// ListMembersInput mirrors ListMembersFilter at the use-case boundary.
type ListMembersInput struct {
	Tier   string
	Search string
	Page   int
	Limit  int
}

// ListMembersResult is returned by ListMembers.
type ListMembersResult struct {
	Items      []*domain.Member
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// MemberService defines use-case operations on loyalty members.
type MemberService interface {
	GetMember(ctx context.Context, uid string) (*domain.Member, error)
	ListMembers(ctx context.Context, in ListMembersInput) (*ListMembersResult, error)
	UpdateMember(ctx context.Context, in UpdateMemberInput) error
	EditPoints(ctx context.Context, in EditPointsInput) error
	GrantVoucher(ctx context.Context, in GrantVoucherInput) (*domain.Voucher, error)
	// DeleteMember removes the member document and best-effort deletes the
	// backing credential (a missing credential is treated as success).
	DeleteMember(ctx context.Context, uid string, actor Identity) error
}
