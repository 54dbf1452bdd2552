package service

import (
	"context"
	"time"

	"github.com/docuforge/docgen-api/internal/core/domain"
	"github.com/docuforge/docgen-api/internal/core/ports"
)

// TemplateService implements the thin template surface behind the admin gate.
type TemplateService struct {
	repo ports.TemplateRepository
}

func NewTemplateService(repo ports.TemplateRepository) *TemplateService {
	return &TemplateService{repo: repo}
}

func (s *TemplateService) List(ctx context.Context, ownerID string) ([]domain.Template, error) {
	return s.repo.List(ctx, ownerID)
}

func (s *TemplateService) Create(ctx context.Context, input ports.CreateTemplateInput) (*domain.Template, error) {
	now := time.Now().UTC()
	tpl := &domain.Template{
		Name:        input.Name,
		Description: input.Description,
		Body:        input.Body,
		OwnerID:     input.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.repo.Create(ctx, tpl)
}
