package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gongcha/admin-api/internal/core/domain"
	"github.com/gongcha/admin-api/internal/core/ports"
)

const minPasswordLen = 8

type StaffService struct {
	repo    ports.StaffRepository
	creds   ports.CredentialRepository
	revoker ports.SessionRevoker
	audit   ports.AuditSink
	log     zerolog.Logger
}

func NewStaffService(
	repo ports.StaffRepository,
	creds ports.CredentialRepository,
	revoker ports.SessionRevoker,
	audit ports.AuditSink,
	log zerolog.Logger,
) *StaffService {
	return &StaffService{repo: repo, creds: creds, revoker: revoker, audit: audit, log: log}
}

// CreateStaff provisions a staff account: credential record first, then the
// staff document keyed by the credential id. If the document write fails the
// credential is deleted again so no orphaned login remains.
func (s *StaffService) CreateStaff(ctx context.Context, in ports.CreateStaffInput) (*domain.Staff, error) {
	if in.Name == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.ErrPasswordTooShort
	}
	if !domain.ValidStaffRole(in.Role) {
		return nil, fmt.Errorf("%w: role %q not assignable", domain.ErrValidation, in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	cred, err := s.creds.Create(ctx, in.Email, string(hash))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	staff := &domain.Staff{
		UID:             cred.ID,
		Name:            in.Name,
		Email:           in.Email,
		Role:            in.Role,
		IsActive:        true,
		StoreLocation:   in.StoreLocation,
		StoreLocations:  in.StoreLocations,
		AccessAllStores: in.AccessAllStores,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Insert(ctx, staff); err != nil {
		// Compensate: without the document the credential is an orphan.
		if delErr := s.creds.Delete(ctx, cred.ID); delErr != nil && delErr != domain.ErrCredentialNotFound {
			s.log.Error().Err(delErr).Str("uid", cred.ID).Msg("compensating credential delete failed")
		}
		return nil, err
	}

	s.log.Info().Str("uid", staff.UID).Str("role", staff.Role).Msg("staff created")
	return staff, nil
}

// UpdateStaff applies the allow-listed patch: name, role, isActive,
// storeLocation, storeLocations, accessAllStores. Deactivation also cuts off
// the account's live sessions.
func (s *StaffService) UpdateStaff(ctx context.Context, in ports.UpdateStaffInput) error {
	if in.Role != nil && !domain.ValidStaffRole(*in.Role) {
		return fmt.Errorf("%w: role %q not assignable", domain.ErrValidation, *in.Role)
	}

	fields := make(map[string]any)
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Role != nil {
		fields["role"] = *in.Role
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if in.StoreLocation != nil {
		fields["store_location"] = *in.StoreLocation
	}
	if in.StoreLocations != nil {
		fields["store_locations"] = *in.StoreLocations
	}
	if in.AccessAllStores != nil {
		fields["access_all_stores"] = *in.AccessAllStores
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.repo.UpdateFields(ctx, in.UID, fields); err != nil {
		return err
	}

	if in.IsActive != nil && !*in.IsActive {
		if err := s.revoker.RevokeUser(ctx, in.UID, time.Now().UTC()); err != nil {
			s.log.Warn().Err(err).Str("uid", in.UID).Msg("session cutoff failed after deactivation")
		}
	}

	s.log.Info().Str("uid", in.UID).Int("fields", len(fields)).Msg("staff updated")
	return nil
}

// DeleteStaff removes the credential (a missing one is tolerated), then the
// staff document, then cuts off live sessions.
func (s *StaffService) DeleteStaff(ctx context.Context, uid string, actor ports.Identity) error {
	if _, err := s.repo.FindByUID(ctx, uid); err != nil {
		return err
	}

	if err := s.creds.Delete(ctx, uid); err != nil && err != domain.ErrCredentialNotFound {
		return fmt.Errorf("delete credential: %w", err)
	}

	if err := s.repo.Delete(ctx, uid); err != nil {
		return err
	}

	if err := s.revoker.RevokeUser(ctx, uid, time.Now().UTC()); err != nil {
		s.log.Warn().Err(err).Str("uid", uid).Msg("session cutoff failed after delete")
	}

	s.audit.Enqueue(domain.AuditEvent{
		ActorUID:   actor.UID,
		Action:     domain.AuditStaffDeleted,
		Resource:   "staff",
		ResourceID: uid,
		At:         time.Now().UTC(),
	})

	s.log.Info().Str("uid", uid).Str("actor", actor.UID).Msg("staff deleted")
	return nil
}

func (s *StaffService) ListStaff(ctx context.Context) ([]*domain.Staff, error) {
	return s.repo.List(ctx)
}

// SetupUser registers the authenticated identity into the staff collection if
// absent. Safe to call repeatedly; only the first call writes.
func (s *StaffService) SetupUser(ctx context.Context, identity ports.Identity, name string) (*domain.Staff, bool, error) {
	existing, err := s.repo.FindByUID(ctx, identity.UID)
	if err == nil {
		return existing, false, nil
	}
	if err != domain.ErrStaffNotFound {
		return nil, false, err
	}

	if name == "" {
		name = identity.Email
	}

	now := time.Now().UTC()
	staff := &domain.Staff{
		UID:       identity.UID,
		Name:      name,
		Email:     identity.Email,
		Role:      domain.RoleCashier,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, staff); err != nil {
		return nil, false, err
	}

	s.log.Info().Str("uid", staff.UID).Msg("staff self-registered")
	return staff, true, nil
}
