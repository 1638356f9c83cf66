package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalblog-backend/internal/domains/page"
)

// =====================================================
// IN-MEMORY DOUBLES
// =====================================================

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

func (c *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")

	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
	return nil
}

func (c *memoryCache) Increment(_ context.Context, _ string) (int64, error) { return 0, nil }

func (c *memoryCache) Ping(context.Context) error { return nil }

type memoryPageRepository struct {
	mu        sync.Mutex
	pages     map[uuid.UUID]*page.Page
	slugCalls int
}

func newMemoryPageRepository() *memoryPageRepository {
	return &memoryPageRepository{pages: make(map[uuid.UUID]*page.Page)}
}

func (r *memoryPageRepository) Create(_ context.Context, p *page.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.pages {
		if existing.Slug == p.Slug {
			return page.ErrDuplicateSlug
		}
	}
	clone := *p
	r.pages[p.ID] = &clone
	return nil
}

func (r *memoryPageRepository) GetByID(_ context.Context, id uuid.UUID) (*page.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pages[id]
	if !ok {
		return nil, page.ErrPageNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *memoryPageRepository) GetBySlug(_ context.Context, slug string) (*page.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slugCalls++
	for _, p := range r.pages {
		if p.Slug == slug {
			clone := *p
			return &clone, nil
		}
	}
	return nil, page.ErrPageNotFound
}

func (r *memoryPageRepository) GetAll(_ context.Context, includeUnpublished bool) ([]*page.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pages []*page.Page
	for _, p := range r.pages {
		if !p.IsPublished && !includeUnpublished {
			continue
		}
		clone := *p
		pages = append(pages, &clone)
	}
	return pages, nil
}

func (r *memoryPageRepository) Update(_ context.Context, p *page.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pages[p.ID]; !ok {
		return page.ErrPageNotFound
	}
	for _, existing := range r.pages {
		if existing.ID != p.ID && existing.Slug == p.Slug {
			return page.ErrDuplicateSlug
		}
	}
	clone := *p
	r.pages[p.ID] = &clone
	return nil
}

func (r *memoryPageRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pages[id]; !ok {
		return page.ErrPageNotFound
	}
	delete(r.pages, id)
	return nil
}

func newPageFixture() (*memoryPageRepository, page.Service) {
	repo := newMemoryPageRepository()
	return repo, NewPageService(repo, newMemoryCache())
}

func aboutRequest() page.CreatePageRequest {
	return page.CreatePageRequest{
		Title: "About the Firm",
		Sections: page.Sections{
			{Type: page.SectionTypeText, Heading: "Who we are", Body: "A boutique litigation practice."},
		},
		IsPublished: true,
	}
}

// =====================================================
// TESTS
// =====================================================

func TestCreatePageGeneratesSlug(t *testing.T) {
	_, svc := newPageFixture()

	p, err := svc.Create(context.Background(), aboutRequest())
	require.NoError(t, err)
	assert.Equal(t, "about-the-firm", p.Slug)
}

func TestCreatePageRejectsEmptySections(t *testing.T) {
	_, svc := newPageFixture()

	req := aboutRequest()
	req.Sections = nil
	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)
}

func TestCreatePageRejectsInvalidSectionType(t *testing.T) {
	_, svc := newPageFixture()

	req := aboutRequest()
	req.Sections = page.Sections{{Type: "video", Body: "clip"}}
	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)
}

func TestGetPublishedPageIsCached(t *testing.T) {
	repo, svc := newPageFixture()

	created, err := svc.Create(context.Background(), aboutRequest())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		p, err := svc.GetBySlug(context.Background(), created.Slug, false)
		require.NoError(t, err)
		assert.Equal(t, created.ID, p.ID)
	}

	assert.Equal(t, 1, repo.slugCalls)
}

func TestUnpublishedPageHiddenFromPublic(t *testing.T) {
	_, svc := newPageFixture()

	req := aboutRequest()
	req.IsPublished = false
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.GetBySlug(context.Background(), created.Slug, false)
	assert.ErrorIs(t, err, page.ErrPageNotFound)

	p, err := svc.GetBySlug(context.Background(), created.Slug, true)
	require.NoError(t, err)
	assert.Equal(t, created.ID, p.ID)
}

func TestUpdatePageInvalidatesCache(t *testing.T) {
	_, svc := newPageFixture()

	created, err := svc.Create(context.Background(), aboutRequest())
	require.NoError(t, err)

	_, err = svc.GetBySlug(context.Background(), created.Slug, false)
	require.NoError(t, err)

	newTitle := "About Us"
	keepSlug := created.Slug
	_, err = svc.Update(context.Background(), created.ID, page.UpdatePageRequest{
		Title: &newTitle,
		Slug:  &keepSlug,
	})
	require.NoError(t, err)

	p, err := svc.GetBySlug(context.Background(), created.Slug, false)
	require.NoError(t, err)
	assert.Equal(t, "About Us", p.Title)
}

func TestUnpublishingRemovesPageFromPublic(t *testing.T) {
	_, svc := newPageFixture()

	created, err := svc.Create(context.Background(), aboutRequest())
	require.NoError(t, err)

	// Warm the cache with the published copy.
	_, err = svc.GetBySlug(context.Background(), created.Slug, false)
	require.NoError(t, err)

	unpublished := false
	_, err = svc.Update(context.Background(), created.ID, page.UpdatePageRequest{IsPublished: &unpublished})
	require.NoError(t, err)

	_, err = svc.GetBySlug(context.Background(), created.Slug, false)
	assert.ErrorIs(t, err, page.ErrPageNotFound)
}

func TestDeletePage(t *testing.T) {
	_, svc := newPageFixture()

	created, err := svc.Create(context.Background(), aboutRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.GetBySlug(context.Background(), created.Slug, true)
	assert.ErrorIs(t, err, page.ErrPageNotFound)
}
