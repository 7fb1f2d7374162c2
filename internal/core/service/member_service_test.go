package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gongcha/admin-api/internal/core/domain"
	"github.com/gongcha/admin-api/internal/core/ports"
)

func newMemberFixture(t *testing.T) (*MemberService, *stubMemberRepo, *stubCredentialRepo, *recordingSink) {
	t.Helper()
	repo := newStubMemberRepo()
	creds := newStubCredentialRepo()
	sink := &recordingSink{}
	svc := NewMemberService(repo, creds, sink, zerolog.Nop())
	return svc, repo, creds, sink
}

func seedMember(t *testing.T, repo *stubMemberRepo, uid string, current, lifetime int64) {
	t.Helper()
	repo.members[uid] = &domain.Member{
		UID:            uid,
		Name:           "Budi",
		Role:           "member",
		Tier:           "gold",
		CurrentPoints:  current,
		LifetimePoints: lifetime,
		PhoneNumber:    "+62811111111",
	}
}

func TestEditPoints_Valid(t *testing.T) {
	svc, repo, _, sink := newMemberFixture(t)
	seedMember(t, repo, "m1", 100, 500)

	err := svc.EditPoints(context.Background(), ports.EditPointsInput{
		UID:            "m1",
		CurrentPoints:  250,
		LifetimePoints: 600,
		Editor:         ports.Identity{UID: "admin-1", Role: domain.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("edit points: %v", err)
	}

	m := repo.members["m1"]
	if m.CurrentPoints != 250 || m.LifetimePoints != 600 {
		t.Errorf("balances = %d/%d, want 250/600", m.CurrentPoints, m.LifetimePoints)
	}
	if m.PointsUpdatedBy != "admin-1" {
		t.Errorf("editor stamp = %q, want admin-1", m.PointsUpdatedBy)
	}

	events := sink.recorded()
	if len(events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(events))
	}
	if events[0].Action != domain.AuditPointsEdited || events[0].ResourceID != "m1" {
		t.Errorf("unexpected audit event: %+v", events[0])
	}
}

func TestEditPoints_LifetimeBelowCurrent(t *testing.T) {
	svc, repo, _, sink := newMemberFixture(t)
	seedMember(t, repo, "m1", 100, 500)

	err := svc.EditPoints(context.Background(), ports.EditPointsInput{
		UID:            "m1",
		CurrentPoints:  300,
		LifetimePoints: 200,
		Editor:         ports.Identity{UID: "admin-1"},
	})
	if !errors.Is(err, domain.ErrLifetimeBelowCurrent) {
		t.Fatalf("err = %v, want ErrLifetimeBelowCurrent", err)
	}
	if got := err.Error(); got != "Lifetime XP tidak boleh lebih kecil dari poin aktif." {
		t.Errorf("message = %q", got)
	}

	// The document and the audit trail stay untouched on a rejected edit.
	if m := repo.members["m1"]; m.CurrentPoints != 100 || m.LifetimePoints != 500 {
		t.Errorf("balances changed to %d/%d", m.CurrentPoints, m.LifetimePoints)
	}
	if len(sink.recorded()) != 0 {
		t.Errorf("audit event emitted for rejected edit")
	}
}

func TestEditPoints_NegativeValues(t *testing.T) {
	svc, repo, _, _ := newMemberFixture(t)
	seedMember(t, repo, "m1", 100, 500)

	for _, in := range []ports.EditPointsInput{
		{UID: "m1", CurrentPoints: -1, LifetimePoints: 500},
		{UID: "m1", CurrentPoints: 100, LifetimePoints: -1},
	} {
		if err := svc.EditPoints(context.Background(), in); !errors.Is(err, domain.ErrInvalidPoints) {
			t.Errorf("EditPoints(%d, %d) = %v, want ErrInvalidPoints", in.CurrentPoints, in.LifetimePoints, err)
		}
	}
}

func TestEditPoints_MemberMissing(t *testing.T) {
	svc, _, _, _ := newMemberFixture(t)

	err := svc.EditPoints(context.Background(), ports.EditPointsInput{
		UID:            "ghost",
		CurrentPoints:  10,
		LifetimePoints: 10,
	})
	if !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("err = %v, want ErrMemberNotFound", err)
	}
}

func TestGrantVoucher_TwoGrantsBothLand(t *testing.T) {
	svc, repo, _, sink := newMemberFixture(t)
	seedMember(t, repo, "m1", 0, 0)

	first, err := svc.GrantVoucher(context.Background(), ports.GrantVoucherInput{
		UID:      "m1",
		RewardID: "rw-1",
		Title:    "Free Topping",
		Type:     domain.VoucherTypePersonal,
		Actor:    ports.Identity{UID: "admin-1"},
	})
	if err != nil {
		t.Fatalf("first grant: %v", err)
	}
	second, err := svc.GrantVoucher(context.Background(), ports.GrantVoucherInput{
		UID:      "m1",
		RewardID: "rw-2",
		Title:    "Buy One Get One",
		Type:     domain.VoucherTypeGeneral,
		Actor:    ports.Identity{UID: "admin-1"},
	})
	if err != nil {
		t.Fatalf("second grant: %v", err)
	}

	if first.ID == second.ID {
		t.Errorf("voucher ids collide: %s", first.ID)
	}
	m := repo.members["m1"]
	if len(m.Vouchers) != 2 {
		t.Fatalf("expected 2 vouchers, got %d", len(m.Vouchers))
	}
	if m.Vouchers[0].RewardID != "rw-1" || m.Vouchers[1].RewardID != "rw-2" {
		t.Errorf("vouchers out of order: %+v", m.Vouchers)
	}
	if len(sink.recorded()) != 2 {
		t.Errorf("expected 2 audit events, got %d", len(sink.recorded()))
	}
}

func TestGrantVoucher_UnknownType(t *testing.T) {
	svc, repo, _, _ := newMemberFixture(t)
	seedMember(t, repo, "m1", 0, 0)

	_, err := svc.GrantVoucher(context.Background(), ports.GrantVoucherInput{
		UID:  "m1",
		Type: "platinum",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if len(repo.members["m1"].Vouchers) != 0 {
		t.Errorf("voucher appended despite invalid type")
	}
}

func TestDeleteMember_MissingCredentialTolerated(t *testing.T) {
	svc, repo, _, sink := newMemberFixture(t)
	seedMember(t, repo, "m1", 0, 0)

	// No credential record exists for m1; delete still succeeds.
	err := svc.DeleteMember(context.Background(), "m1", ports.Identity{UID: "admin-1"})
	if err != nil {
		t.Fatalf("delete member: %v", err)
	}
	if _, ok := repo.members["m1"]; ok {
		t.Errorf("member document still present")
	}

	events := sink.recorded()
	if len(events) != 1 || events[0].Action != domain.AuditMemberDeleted {
		t.Errorf("unexpected audit events: %+v", events)
	}
}

func TestDeleteMember_NotFound(t *testing.T) {
	svc, _, _, _ := newMemberFixture(t)

	err := svc.DeleteMember(context.Background(), "ghost", ports.Identity{UID: "admin-1"})
	if !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("err = %v, want ErrMemberNotFound", err)
	}
}

func TestUpdateMember_AllowListOnly(t *testing.T) {
	svc, repo, _, _ := newMemberFixture(t)
	seedMember(t, repo, "m1", 100, 500)

	name := "Budi Santoso"
	tier := "platinum"
	err := svc.UpdateMember(context.Background(), ports.UpdateMemberInput{
		UID:  "m1",
		Name: &name,
		Tier: &tier,
	})
	if err != nil {
		t.Fatalf("update member: %v", err)
	}

	patch := repo.patches["m1"]
	if len(patch) != 2 {
		t.Fatalf("patch = %v, want exactly name and tier", patch)
	}
	if patch["name"] != "Budi Santoso" || patch["tier"] != "platinum" {
		t.Errorf("patch values: %v", patch)
	}
	// Point balances never travel through the generic update.
	for _, k := range []string{"current_points", "lifetime_points"} {
		if _, ok := patch[k]; ok {
			t.Errorf("%s leaked into patch", k)
		}
	}
}

func TestUpdateMember_EmptyPatchIsNoop(t *testing.T) {
	svc, repo, _, _ := newMemberFixture(t)
	seedMember(t, repo, "m1", 100, 500)

	if err := svc.UpdateMember(context.Background(), ports.UpdateMemberInput{UID: "m1"}); err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if _, ok := repo.patches["m1"]; ok {
		t.Errorf("empty patch reached the repository")
	}
}

func TestListMembers_ClampsPagination(t *testing.T) {
	svc, repo, _, _ := newMemberFixture(t)
	seedMember(t, repo, "m1", 0, 0)

	result, err := svc.ListMembers(context.Background(), ports.ListMembersInput{Page: 0, Limit: 1000})
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if result.Page != 1 {
		t.Errorf("page = %d, want 1", result.Page)
	}
	if result.Limit != 100 {
		t.Errorf("limit = %d, want 100", result.Limit)
	}
	if result.Total != 1 {
		t.Errorf("total = %d, want 1", result.Total)
	}
}

func TestEditPoints_StampsRecentTime(t *testing.T) {
	svc, repo, _, _ := newMemberFixture(t)
	seedMember(t, repo, "m1", 0, 0)

	before := time.Now().UTC().Add(-time.Second)
	err := svc.EditPoints(context.Background(), ports.EditPointsInput{
		UID:            "m1",
		CurrentPoints:  10,
		LifetimePoints: 10,
		Editor:         ports.Identity{UID: "admin-1"},
	})
	if err != nil {
		t.Fatalf("edit points: %v", err)
	}
	if at := repo.members["m1"].PointsUpdatedAt; at.Before(before) {
		t.Errorf("stamp %v predates the edit", at)
	}
}
