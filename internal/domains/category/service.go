package category

import (
	"context"

	"github.com/google/uuid"
)

// Service is the category business logic layer. Listing is cached; every
// write invalidates the cache.
type Service interface {
	Create(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context, includeInactive bool) ([]Category, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*Category, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
