package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gongcha/admin-api/internal/core/domain"
	"github.com/gongcha/admin-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns the consumer side of the audit pipeline: it
// persists events handed over by the dispatcher workers.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Process(ctx context.Context, event domain.AuditEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}

	s.log.Debug().
		Str("actor", event.ActorUID).
		Str("action", event.Action).
		Str("resource_id", event.ResourceID).
		Msg("audit event recorded")
	return nil
}
