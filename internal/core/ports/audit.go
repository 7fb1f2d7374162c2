package ports

import (
	"context"

	"github.com/gongcha/admin-api/internal/core/domain"
)

// AuditSink accepts audit events for asynchronous persistence. Enqueue must
// not block the caller beyond channel buffering and must never return an
// error to the originating request path.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}

// AuditService persists queued audit events.
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
}

// AuditRepository appends events to the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
