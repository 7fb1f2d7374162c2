package domain

import (
	"errors"
	"time"
)

var ErrStaffNotFound = errors.New("staff not found")
var ErrStaffExists = errors.New("staff already exists")
var ErrCredentialNotFound = errors.New("credential not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidSession = errors.New("invalid session")
var ErrStaffInactive = errors.New("staff account inactive")

// ErrPasswordTooShort carries the exact message the admin UI displays.
var ErrPasswordTooShort = errors.New("Password minimal 8 karakter.")

// Credential is the login record backing a staff account. The credential's ID
// (Mongo ObjectID hex) is the staff document key.
type Credential struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Staff is a back-office operator account. StoreLocation is the legacy single
// assignment; StoreLocations supersedes it for multi-store operators.
type Staff struct {
	UID             string    `json:"uid" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	Email           string    `json:"email" bson:"email"`
	Role            string    `json:"role" bson:"role"`
	IsActive        bool      `json:"is_active" bson:"is_active"`
	StoreLocation   string    `json:"store_location,omitempty" bson:"store_location,omitempty"`
	StoreLocations  []string  `json:"store_locations,omitempty" bson:"store_locations,omitempty"`
	AccessAllStores bool      `json:"access_all_stores" bson:"access_all_stores"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

// ValidStaffRole reports whether role may be assigned to a staff account.
func ValidStaffRole(role string) bool {
	switch role {
	case RoleCashier, RoleStoreManager, RoleAdmin:
		return true
	}
	return false
}
