package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalblog-backend/internal/domains/category"
)

// =====================================================
// IN-MEMORY DOUBLES
// =====================================================

// memoryCache implements cache.Cache with a plain map and JSON round-trip,
// matching the serialization behavior of the Redis implementation.
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.items, key)
	}
	return nil
}

func (c *memoryCache) DeletePattern(context.Context, string) error { return nil }

func (c *memoryCache) Increment(_ context.Context, key string) (int64, error) { return 0, nil }

func (c *memoryCache) Ping(context.Context) error { return nil }

type memoryCategoryRepository struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*category.Category
	listCalls  int
}

func newMemoryCategoryRepository() *memoryCategoryRepository {
	return &memoryCategoryRepository{categories: make(map[uuid.UUID]*category.Category)}
}

func (r *memoryCategoryRepository) Create(_ context.Context, c *category.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.categories {
		if existing.Slug == c.Slug {
			return category.ErrDuplicateSlug
		}
	}
	clone := *c
	r.categories[c.ID] = &clone
	return nil
}

func (r *memoryCategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *memoryCategoryRepository) GetBySlug(_ context.Context, slug string) (*category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.Slug == slug {
			clone := *c
			return &clone, nil
		}
	}
	return nil, category.ErrCategoryNotFound
}

func (r *memoryCategoryRepository) GetAll(_ context.Context, includeInactive bool) ([]category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listCalls++
	var out []category.Category
	for _, c := range r.categories {
		if !includeInactive && !c.IsActive {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *memoryCategoryRepository) Update(_ context.Context, c *category.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[c.ID]; !ok {
		return category.ErrCategoryNotFound
	}
	clone := *c
	r.categories[c.ID] = &clone
	return nil
}

func (r *memoryCategoryRepository) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.categories[id]
	if !ok {
		return category.ErrCategoryNotFound
	}
	c.IsActive = active
	return nil
}

func (r *memoryCategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.categories[id]
	if !ok {
		return category.ErrCategoryNotFound
	}
	if c.PostCount != nil && *c.PostCount > 0 {
		return category.ErrHasPosts
	}
	delete(r.categories, id)
	return nil
}

func (r *memoryCategoryRepository) ExistsBySlug(_ context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.Slug == slug && (excludeID == nil || c.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

// =====================================================
// TESTS
// =====================================================

func newCategoryFixture() (*memoryCategoryRepository, *memoryCache, category.Service) {
	repo := newMemoryCategoryRepository()
	cache := newMemoryCache()
	return repo, cache, NewCategoryService(repo, cache)
}

func TestCreateCategoryGeneratesSlug(t *testing.T) {
	_, _, svc := newCategoryFixture()

	cat, err := svc.Create(context.Background(), category.CreateCategoryRequest{Name: "Data Protection"})
	require.NoError(t, err)

	assert.Equal(t, "data-protection", cat.Slug)
	assert.True(t, cat.IsActive)
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	_, _, svc := newCategoryFixture()

	_, err := svc.Create(context.Background(), category.CreateCategoryRequest{Name: "Tax Law"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), category.CreateCategoryRequest{Name: "Tax Law"})
	assert.ErrorIs(t, err, category.ErrDuplicateSlug)
}

func TestListServedFromCache(t *testing.T) {
	repo, _, svc := newCategoryFixture()

	_, err := svc.Create(context.Background(), category.CreateCategoryRequest{Name: "Employment"})
	require.NoError(t, err)

	first, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, second, 1)

	// Only the first call reached the repository.
	assert.Equal(t, 1, repo.listCalls)
}

func TestWriteInvalidatesListCache(t *testing.T) {
	repo, _, svc := newCategoryFixture()

	_, err := svc.Create(context.Background(), category.CreateCategoryRequest{Name: "Corporate"})
	require.NoError(t, err)

	_, err = svc.List(context.Background(), false)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), category.CreateCategoryRequest{Name: "Litigation"})
	require.NoError(t, err)

	categories, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, 2, repo.listCalls)
}

func TestListExcludesInactive(t *testing.T) {
	_, _, svc := newCategoryFixture()

	cat, err := svc.Create(context.Background(), category.CreateCategoryRequest{Name: "Archived Topic"})
	require.NoError(t, err)

	_, err = svc.SetActive(context.Background(), cat.ID, false)
	require.NoError(t, err)

	active, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDeleteCategoryWithPosts(t *testing.T) {
	repo, _, svc := newCategoryFixture()

	cat, err := svc.Create(context.Background(), category.CreateCategoryRequest{Name: "In Use"})
	require.NoError(t, err)

	count := int64(3)
	repo.categories[cat.ID].PostCount = &count

	err = svc.Delete(context.Background(), cat.ID)
	assert.ErrorIs(t, err, category.ErrHasPosts)
}

func TestUpdateCategoryPartial(t *testing.T) {
	_, _, svc := newCategoryFixture()

	cat, err := svc.Create(context.Background(), category.CreateCategoryRequest{
		Name:        "Old Name",
		Description: "keep me",
	})
	require.NoError(t, err)

	newName := "New Name"
	updated, err := svc.Update(context.Background(), cat.ID, category.UpdateCategoryRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "new-name", updated.Slug)
	assert.Equal(t, "keep me", updated.Description)
}
