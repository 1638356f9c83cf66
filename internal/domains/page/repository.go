package page

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence layer for static pages.
type Repository interface {
	Create(ctx context.Context, p *Page) error
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	GetAll(ctx context.Context, includeUnpublished bool) ([]*Page, error)
	Update(ctx context.Context, p *Page) error
	Delete(ctx context.Context, id uuid.UUID) error
}
