package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gongcha/admin-api/internal/core/domain"
	"github.com/gongcha/admin-api/internal/core/ports"
)

// In-memory fakes shared by the service tests. Each stub honours the same
// sentinel-error contract as the Mongo implementations.

type stubCredentialRepo struct {
	mu      sync.Mutex
	seq     int
	byID    map[string]*domain.Credential
	byEmail map[string]*domain.Credential
	deleted []string

	deleteErr error
}

func newStubCredentialRepo() *stubCredentialRepo {
	return &stubCredentialRepo{
		byID:    make(map[string]*domain.Credential),
		byEmail: make(map[string]*domain.Credential),
	}
}

func (r *stubCredentialRepo) Create(_ context.Context, email, passwordHash string) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[email]; ok {
		return nil, domain.ErrEmailTaken
	}
	r.seq++
	cred := &domain.Credential{
		ID:           fmt.Sprintf("cred-%d", r.seq),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	r.byID[cred.ID] = cred
	r.byEmail[email] = cred
	return cred, nil
}

func (r *stubCredentialRepo) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cred, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrCredentialNotFound
	}
	out := *cred
	return &out, nil
}

func (r *stubCredentialRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	cred, ok := r.byID[id]
	if !ok {
		return domain.ErrCredentialNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, cred.Email)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubStaffRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Staff
	patches  map[string]map[string]any

	insertErr error
}

func newStubStaffRepo() *stubStaffRepo {
	return &stubStaffRepo{
		accounts: make(map[string]*domain.Staff),
		patches:  make(map[string]map[string]any),
	}
}

func (r *stubStaffRepo) Insert(_ context.Context, s *domain.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, ok := r.accounts[s.UID]; ok {
		return domain.ErrStaffExists
	}
	cp := *s
	r.accounts[s.UID] = &cp
	return nil
}

func (r *stubStaffRepo) FindByUID(_ context.Context, uid string) (*domain.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.accounts[uid]
	if !ok {
		return nil, domain.ErrStaffNotFound
	}
	out := *s
	return &out, nil
}

func (r *stubStaffRepo) List(_ context.Context) ([]*domain.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Staff, 0, len(r.accounts))
	for _, s := range r.accounts {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubStaffRepo) UpdateFields(_ context.Context, uid string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.accounts[uid]
	if !ok {
		return domain.ErrStaffNotFound
	}
	r.patches[uid] = fields
	if v, ok := fields["name"].(string); ok {
		s.Name = v
	}
	if v, ok := fields["role"].(string); ok {
		s.Role = v
	}
	if v, ok := fields["is_active"].(bool); ok {
		s.IsActive = v
	}
	return nil
}

func (r *stubStaffRepo) Delete(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[uid]; !ok {
		return domain.ErrStaffNotFound
	}
	delete(r.accounts, uid)
	return nil
}

type stubMemberRepo struct {
	mu      sync.Mutex
	members map[string]*domain.Member
	patches map[string]map[string]any
}

func newStubMemberRepo() *stubMemberRepo {
	return &stubMemberRepo{
		members: make(map[string]*domain.Member),
		patches: make(map[string]map[string]any),
	}
}

func (r *stubMemberRepo) FindByUID(_ context.Context, uid string) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[uid]
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	out := *m
	return &out, nil
}

func (r *stubMemberRepo) List(_ context.Context, filter ports.ListMembersFilter) ([]*domain.Member, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Member, 0, len(r.members))
	for _, m := range r.members {
		if filter.Tier != "" && m.Tier != filter.Tier {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *stubMemberRepo) UpdateFields(_ context.Context, uid string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[uid]; !ok {
		return domain.ErrMemberNotFound
	}
	r.patches[uid] = fields
	return nil
}

func (r *stubMemberRepo) UpdatePoints(_ context.Context, uid string, current, lifetime int64, editorUID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[uid]
	if !ok {
		return domain.ErrMemberNotFound
	}
	m.CurrentPoints = current
	m.LifetimePoints = lifetime
	m.PointsUpdatedBy = editorUID
	m.PointsUpdatedAt = at
	return nil
}

func (r *stubMemberRepo) AppendVoucher(_ context.Context, uid string, v domain.Voucher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[uid]
	if !ok {
		return domain.ErrMemberNotFound
	}
	m.Vouchers = append(m.Vouchers, v)
	return nil
}

func (r *stubMemberRepo) Delete(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[uid]; !ok {
		return domain.ErrMemberNotFound
	}
	delete(r.members, uid)
	return nil
}

type stubStoreRepo struct {
	mu      sync.Mutex
	stores  map[string]*domain.Store
	patches map[string]map[string]any
}

func newStubStoreRepo() *stubStoreRepo {
	return &stubStoreRepo{
		stores:  make(map[string]*domain.Store),
		patches: make(map[string]map[string]any),
	}
}

func (r *stubStoreRepo) Insert(_ context.Context, s *domain.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[s.ID]; ok {
		return domain.ErrStoreExists
	}
	cp := *s
	r.stores[s.ID] = &cp
	return nil
}

func (r *stubStoreRepo) FindByID(_ context.Context, id string) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[id]
	if !ok {
		return nil, domain.ErrStoreNotFound
	}
	out := *s
	return &out, nil
}

func (r *stubStoreRepo) List(_ context.Context) ([]*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Store, 0, len(r.stores))
	for _, s := range r.stores {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubStoreRepo) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[id]; !ok {
		return domain.ErrStoreNotFound
	}
	r.patches[id] = fields
	return nil
}

type stubMenuRepo struct {
	mu      sync.Mutex
	items   map[string]*domain.MenuItem
	patches map[string]map[string]any
}

func newStubMenuRepo() *stubMenuRepo {
	return &stubMenuRepo{
		items:   make(map[string]*domain.MenuItem),
		patches: make(map[string]map[string]any),
	}
}

func (r *stubMenuRepo) Insert(_ context.Context, item *domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *stubMenuRepo) FindByID(_ context.Context, id string) (*domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrMenuItemNotFound
	}
	out := *item
	return &out, nil
}

func (r *stubMenuRepo) List(_ context.Context) ([]*domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubMenuRepo) UpdateAttributes(_ context.Context, id string, attrs map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrMenuItemNotFound
	}
	r.patches[id] = attrs
	return nil
}

func (r *stubMenuRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrMenuItemNotFound
	}
	delete(r.items, id)
	return nil
}

type recordingSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (s *recordingSink) Enqueue(event domain.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) recorded() []domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditEvent, len(s.events))
	copy(out, s.events)
	return out
}

type stubRevoker struct {
	mu          sync.Mutex
	revokedSIDs map[string]bool
	cutoffs     map[string]time.Time
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revokedSIDs: make(map[string]bool), cutoffs: make(map[string]time.Time)}
}

func (r *stubRevoker) RevokeSession(_ context.Context, sid string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revokedSIDs[sid] = true
	return nil
}

func (r *stubRevoker) RevokeUser(_ context.Context, uid string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cutoffs[uid] = at
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, sid, uid string, issuedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.revokedSIDs[sid] {
		return true, nil
	}
	if cutoff, ok := r.cutoffs[uid]; ok && !issuedAt.After(cutoff) {
		return true, nil
	}
	return false, nil
}
