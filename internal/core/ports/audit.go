package ports

import (
	"context"

	"github.com/docuforge/docgen-api/internal/core/domain"
)

// AuditSink accepts authentication events for asynchronous persistence.
// Record must not block the request path.
type AuditSink interface {
	Record(event domain.AuditEvent)
}

// AuditRepository defines the interface for audit trail persistence.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}
