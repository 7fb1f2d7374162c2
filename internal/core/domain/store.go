package domain

import (
	"errors"
	"regexp"
	"time"
)

var ErrStoreNotFound = errors.New("store not found")
var ErrStoreExists = errors.New("store id already exists")
var ErrInvalidStoreID = errors.New("invalid store id")

// storeIDPattern constrains store ids to lowercase slugs. Store ids are
// user-chosen, immutable, and double as the document key.
var storeIDPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// ValidStoreID reports whether id is an acceptable store identifier.
func ValidStoreID(id string) bool {
	return storeIDPattern.MatchString(id)
}

// Coordinates is a geographic point. Nil on a store means no geocode yet.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Store is a physical outlet.
type Store struct {
	ID             string       `json:"id" bson:"_id"`
	Name           string       `json:"name" bson:"name"`
	Address        string       `json:"address" bson:"address"`
	Coordinates    *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	OpenHours      string       `json:"open_hours,omitempty" bson:"open_hours,omitempty"`
	StatusOverride string       `json:"status_override,omitempty" bson:"status_override,omitempty"`
	IsActive       bool         `json:"is_active" bson:"is_active"`
	CreatedAt      time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" bson:"updated_at"`
}
