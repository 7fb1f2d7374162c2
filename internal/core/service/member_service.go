package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gongcha/admin-api/internal/core/domain"
	"github.com/gongcha/admin-api/internal/core/ports"
)

type MemberService struct {
	repo  ports.MemberRepository
	creds ports.CredentialRepository
	audit ports.AuditSink
	log   zerolog.Logger
}

func NewMemberService(repo ports.MemberRepository, creds ports.CredentialRepository, audit ports.AuditSink, log zerolog.Logger) *MemberService {
	return &MemberService{repo: repo, creds: creds, audit: audit, log: log}
}

func (s *MemberService) GetMember(ctx context.Context, uid string) (*domain.Member, error) {
	return s.repo.FindByUID(ctx, uid)
}

func (s *MemberService) ListMembers(ctx context.Context, in ports.ListMembersInput) (*ports.ListMembersResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	items, total, err := s.repo.List(ctx, ports.ListMembersFilter{
		Tier:   in.Tier,
		Search: in.Search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListMembersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateMember applies the allow-listed field patch: name, tier, phoneNumber,
// role. Absent fields are left untouched; anything else never reaches here.
func (s *MemberService) UpdateMember(ctx context.Context, in ports.UpdateMemberInput) error {
	fields := make(map[string]any)
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Tier != nil {
		fields["tier"] = *in.Tier
	}
	if in.PhoneNumber != nil {
		fields["phone_number"] = *in.PhoneNumber
	}
	if in.Role != nil {
		fields["role"] = *in.Role
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.repo.UpdateFields(ctx, in.UID, fields); err != nil {
		return err
	}

	s.log.Info().Str("uid", in.UID).Int("fields", len(fields)).Msg("member updated")
	return nil
}

// EditPoints sets both balances after validating the lifetime >= current
// invariant, and stamps the acting admin on the document.
func (s *MemberService) EditPoints(ctx context.Context, in ports.EditPointsInput) error {
	if in.CurrentPoints < 0 || in.LifetimePoints < 0 {
		return fmt.Errorf("%w: points must be non-negative", domain.ErrInvalidPoints)
	}
	if in.LifetimePoints < in.CurrentPoints {
		return domain.ErrLifetimeBelowCurrent
	}

	now := time.Now().UTC()
	if err := s.repo.UpdatePoints(ctx, in.UID, in.CurrentPoints, in.LifetimePoints, in.Editor.UID, now); err != nil {
		return err
	}

	s.audit.Enqueue(domain.AuditEvent{
		ActorUID:   in.Editor.UID,
		Action:     domain.AuditPointsEdited,
		Resource:   "member",
		ResourceID: in.UID,
		Detail:     fmt.Sprintf("current=%d lifetime=%d", in.CurrentPoints, in.LifetimePoints),
		At:         now,
	})

	s.log.Info().
		Str("uid", in.UID).
		Str("editor", in.Editor.UID).
		Int64("current", in.CurrentPoints).
		Int64("lifetime", in.LifetimePoints).
		Msg("points edited")
	return nil
}

// GrantVoucher appends a freshly-identified voucher via array-union, so two
// concurrent grants to the same member both land.
func (s *MemberService) GrantVoucher(ctx context.Context, in ports.GrantVoucherInput) (*domain.Voucher, error) {
	if in.Type != domain.VoucherTypePersonal && in.Type != domain.VoucherTypeGeneral {
		return nil, fmt.Errorf("%w: unknown voucher type %q", domain.ErrValidation, in.Type)
	}

	now := time.Now().UTC()
	voucher := domain.Voucher{
		ID:        generateID("vch"),
		RewardID:  in.RewardID,
		Title:     in.Title,
		Code:      in.Code,
		Used:      false,
		Type:      in.Type,
		ExpiresAt: in.ExpiresAt,
		CreatedAt: now,
	}

	if err := s.repo.AppendVoucher(ctx, in.UID, voucher); err != nil {
		return nil, err
	}

	s.audit.Enqueue(domain.AuditEvent{
		ActorUID:   in.Actor.UID,
		Action:     domain.AuditVoucherGrant,
		Resource:   "member",
		ResourceID: in.UID,
		Detail:     voucher.ID,
		At:         now,
	})

	s.log.Info().Str("uid", in.UID).Str("voucher_id", voucher.ID).Str("actor", in.Actor.UID).Msg("voucher granted")
	return &voucher, nil
}

// DeleteMember removes the member document and best-effort deletes the
// backing credential. A credential that is already gone counts as success.
func (s *MemberService) DeleteMember(ctx context.Context, uid string, actor ports.Identity) error {
	if _, err := s.repo.FindByUID(ctx, uid); err != nil {
		return err
	}

	if err := s.creds.Delete(ctx, uid); err != nil && err != domain.ErrCredentialNotFound {
		s.log.Warn().Err(err).Str("uid", uid).Msg("credential delete failed, continuing")
	}

	if err := s.repo.Delete(ctx, uid); err != nil {
		return err
	}

	s.audit.Enqueue(domain.AuditEvent{
		ActorUID:   actor.UID,
		Action:     domain.AuditMemberDeleted,
		Resource:   "member",
		ResourceID: uid,
		At:         time.Now().UTC(),
	})

	s.log.Info().Str("uid", uid).Str("actor", actor.UID).Msg("member deleted")
	return nil
}

// generateID returns a prefixed random id in the format <prefix>-XXXXXXXXXXXX.
func generateID(prefix string) string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s-%012X", prefix, time.Now().UnixNano()&0xFFFFFFFFFFFF)
	}
	return fmt.Sprintf("%s-%012X", prefix, b)
}
