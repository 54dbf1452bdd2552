package ports

import (
	"context"

	"github.com/docuforge/docgen-api/internal/core/domain"
)

// CreateTemplateInput is the DTO passed from the transport layer to TemplateService.
type CreateTemplateInput struct {
	Name        string
	Description string
	Body        string
	OwnerID     string
}

// TemplateRepository defines the interface for template persistence.
type TemplateRepository interface {
	List(ctx context.Context, ownerID string) ([]domain.Template, error)
	Create(ctx context.Context, tpl *domain.Template) (*domain.Template, error)
}

// TemplateService defines use-case operations for document templates.
type TemplateService interface {
	List(ctx context.Context, ownerID string) ([]domain.Template, error)
	Create(ctx context.Context, input CreateTemplateInput) (*domain.Template, error)
}
