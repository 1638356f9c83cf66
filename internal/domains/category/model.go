package category

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"legalblog-backend/internal/shared/utils"
)

// Category is a flat taxonomy entry for posts. No hierarchy: a post links
// to at most one category.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// PostCount is populated on reads, not stored.
	PostCount *int64 `json:"post_count,omitempty"`
}

// NewCategory validates the inputs and returns an active category with a
// generated slug.
func NewCategory(name, description string, sortOrder int) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("category name cannot be empty")
	}
	if len(name) > 255 {
		return nil, fmt.Errorf("category name must not exceed 255 characters (got %d)", len(name))
	}
	if len(description) > 1000 {
		return nil, fmt.Errorf("category description must not exceed 1000 characters (got %d)", len(description))
	}
	if sortOrder < 0 || sortOrder > 999 {
		return nil, fmt.Errorf("sort_order must be between 0 and 999 (got %d)", sortOrder)
	}

	now := time.Now()
	return &Category{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Slug:        utils.GenerateSlug(name),
		Description: description,
		SortOrder:   sortOrder,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update revalidates and applies new values, regenerating the slug when
// the name changes.
func (c *Category) Update(name, description string, sortOrder int) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("category name cannot be empty")
	}
	if len(name) > 255 {
		return fmt.Errorf("category name must not exceed 255 characters (got %d)", len(name))
	}
	if len(description) > 1000 {
		return fmt.Errorf("category description must not exceed 1000 characters (got %d)", len(description))
	}
	if sortOrder < 0 || sortOrder > 999 {
		return fmt.Errorf("sort_order must be between 0 and 999 (got %d)", sortOrder)
	}

	c.Name = strings.TrimSpace(name)
	c.Slug = utils.GenerateSlug(name)
	c.Description = description
	c.SortOrder = sortOrder
	c.UpdatedAt = time.Now()

	return nil
}

func (c *Category) SetActive(active bool) {
	c.IsActive = active
	c.UpdatedAt = time.Now()
}

// CanDelete blocks deletion while posts still reference the category.
func (c *Category) CanDelete() bool {
	return c.PostCount == nil || *c.PostCount == 0
}
