package domain

import (
	"errors"
	"time"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuItem is an attribute bag: the admin UI owns the schema, the API only
// reserves the identity and timestamp keys.
type MenuItem struct {
	ID         string         `json:"id"`
	Attributes map[string]any `json:"attributes"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// reservedMenuKeys may never be supplied by the caller; they are stripped
// from incoming attribute bags before any write.
var reservedMenuKeys = map[string]struct{}{
	"_id":        {},
	"id":         {},
	"createdAt":  {},
	"updatedAt":  {},
	"created_at": {},
	"updated_at": {},
}

// FilterMenuAttributes returns a copy of attrs with reserved keys removed.
func FilterMenuAttributes(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		if _, reserved := reservedMenuKeys[k]; reserved {
			continue
		}
		out[k] = v
	}
	return out
}
