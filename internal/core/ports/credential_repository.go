package ports

import (
	"context"

	"github.com/gongcha/admin-api/internal/core/domain"
)

// CredentialRepository persists login records. The generated credential id is
// the key for the matching staff or member document.
type CredentialRepository interface {
	// Create inserts a credential. Returns domain.ErrEmailTaken when the
	// email is already registered.
	Create(ctx context.Context, email, passwordHash string) (*domain.Credential, error)
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
	// Delete removes a credential. Returns domain.ErrCredentialNotFound when
	// no record exists for id.
	Delete(ctx context.Context, id string) error
}
