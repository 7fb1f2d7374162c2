package domain

import (
	"errors"
	"time"
)

// Roles recognised across the admin surface. Member documents may carry any of
// these; staff accounts are restricted to RoleCashier, RoleStoreManager and
// RoleAdmin (RoleMaster is reserved for the bootstrap account).
const (
	RoleAdmin        = "admin"
	RoleMaster       = "master"
	RoleManager      = "manager"
	RoleStoreManager = "store_manager"
	RoleCashier      = "cashier"
	RoleStaff        = "staff"
)

var ErrMemberNotFound = errors.New("member not found")
var ErrForbidden = errors.New("access forbidden")
var ErrValidation = errors.New("validation failed")
var ErrInvalidPoints = errors.New("invalid point values")

// ErrLifetimeBelowCurrent carries the exact message the admin UI displays, so
// the text is part of the contract.
var ErrLifetimeBelowCurrent = errors.New("Lifetime XP tidak boleh lebih kecil dari poin aktif.")

// VoucherTypePersonal vouchers are granted to a single member; general
// vouchers are campaign-wide codes mirrored onto the member document.
const (
	VoucherTypePersonal = "personal"
	VoucherTypeGeneral  = "general"
)

// Voucher is a redeemable code attached to a member document. Vouchers are
// only ever appended (array-union), never rewritten in place.
type Voucher struct {
	ID        string    `json:"id" bson:"id"`
	RewardID  string    `json:"reward_id" bson:"reward_id"`
	Title     string    `json:"title" bson:"title"`
	Code      string    `json:"code" bson:"code"`
	Used      bool      `json:"used" bson:"used"`
	Type      string    `json:"type" bson:"type"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Member is a loyalty account. UID doubles as the credential-record key when
// the member has a login.
//
// Invariant: LifetimePoints >= CurrentPoints at all times.
type Member struct {
	UID             string    `json:"uid" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	Role            string    `json:"role" bson:"role"`
	Tier            string    `json:"tier" bson:"tier"`
	CurrentPoints   int64     `json:"current_points" bson:"current_points"`
	LifetimePoints  int64     `json:"lifetime_points" bson:"lifetime_points"`
	PhoneNumber     string    `json:"phone_number" bson:"phone_number"`
	Vouchers        []Voucher `json:"vouchers" bson:"vouchers"`
	PointsUpdatedBy string    `json:"points_updated_by,omitempty" bson:"points_updated_by,omitempty"`
	PointsUpdatedAt time.Time `json:"points_updated_at,omitempty" bson:"points_updated_at,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}
