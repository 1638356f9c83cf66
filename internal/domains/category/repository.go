package category

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for categories.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)

	// GetAll returns categories ordered by sort_order then name, with
	// post counts populated. includeInactive widens the listing for
	// admins.
	GetAll(ctx context.Context, includeInactive bool) ([]Category, error)

	Update(ctx context.Context, c *Category) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// Delete refuses while posts still reference the category.
	Delete(ctx context.Context, id uuid.UUID) error

	ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
}
