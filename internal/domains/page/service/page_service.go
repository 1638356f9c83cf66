package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"legalblog-backend/internal/domains/page"
	"legalblog-backend/internal/shared/utils"
	"legalblog-backend/pkg/cache"
	"legalblog-backend/pkg/logger"
)

const (
	pageCacheTTL       = 10 * time.Minute
	pageCachePrefix    = "page:slug:"
	pageCacheAllPrefix = "page:"
)

type pageService struct {
	repo  page.Repository
	cache cache.Cache
}

func NewPageService(repo page.Repository, cacheClient cache.Cache) page.Service {
	return &pageService{
		repo:  repo,
		cache: cacheClient,
	}
}

// GetBySlug is the hot path for the public site, so published pages are
// served cache-aside. Admin reads bypass the cache to avoid leaking
// unpublished content into it.
func (s *pageService) GetBySlug(ctx context.Context, slug string, isAdmin bool) (*page.Page, error) {
	if !isAdmin {
		var cached page.Page
		hit, err := s.cache.Get(ctx, pageCachePrefix+slug, &cached)
		if err != nil {
			logger.Error("failed to read page cache", err)
		}
		if hit {
			return &cached, nil
		}
	}

	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if !p.VisibleTo(isAdmin) {
		return nil, page.ErrPageNotFound
	}

	if !isAdmin {
		if err := s.cache.Set(ctx, pageCachePrefix+slug, p, pageCacheTTL); err != nil {
			logger.Error("failed to cache page", err)
		}
	}

	return p, nil
}

func (s *pageService) List(ctx context.Context, includeUnpublished bool) ([]*page.Page, error) {
	return s.repo.GetAll(ctx, includeUnpublished)
}

func (s *pageService) Create(ctx context.Context, req page.CreatePageRequest) (*page.Page, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := page.NewPage(req.Title, req.Slug, req.Sections, req.IsPublished)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return p, nil
}

func (s *pageService) Update(ctx context.Context, id uuid.UUID, req page.UpdatePageRequest) (*page.Page, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
		if req.Slug == nil {
			p.Slug = utils.GenerateSlug(*req.Title)
		}
	}
	if req.Slug != nil {
		p.Slug = *req.Slug
	}
	if req.Sections != nil {
		p.Sections = *req.Sections
	}
	if req.IsPublished != nil {
		p.IsPublished = *req.IsPublished
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return p, nil
}

func (s *pageService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *pageService) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, fmt.Sprintf("%s*", pageCacheAllPrefix)); err != nil {
		logger.Error("failed to invalidate page cache", err)
	}
}
