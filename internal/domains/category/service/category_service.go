package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"legalblog-backend/internal/domains/category"
	"legalblog-backend/pkg/cache"
	"legalblog-backend/pkg/logger"
)

// The public category list is read on nearly every page render, so it is
// served from Redis and invalidated on any write.
const (
	listCacheKeyActive = "categories:active"
	listCacheKeyAll    = "categories:all"
	listCacheTTL       = 10 * time.Minute
)

type categoryService struct {
	repo  category.Repository
	cache cache.Cache
}

func NewCategoryService(repo category.Repository, cache cache.Cache) category.Service {
	return &categoryService{repo: repo, cache: cache}
}

func (s *categoryService) Create(ctx context.Context, req category.CreateCategoryRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entity, err := category.NewCategory(req.Name, req.Description, req.SortOrder)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsBySlug(ctx, entity.Slug, nil)
	if err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if exists {
		return nil, category.ErrDuplicateSlug
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return entity, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, category.ErrCategoryNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *categoryService) List(ctx context.Context, includeInactive bool) ([]category.Category, error) {
	key := listCacheKeyActive
	if includeInactive {
		key = listCacheKeyAll
	}

	var cached []category.Category
	if found, err := s.cache.Get(ctx, key, &cached); err != nil {
		logger.Error("category list cache read failed", err)
	} else if found {
		return cached, nil
	}

	categories, err := s.repo.GetAll(ctx, includeInactive)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, categories, listCacheTTL); err != nil {
		logger.Error("category list cache write failed", err)
	}

	return categories, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req category.UpdateCategoryRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := entity.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := entity.Description
	if req.Description != nil {
		description = *req.Description
	}
	sortOrder := entity.SortOrder
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	if err := entity.Update(name, description, sortOrder); err != nil {
		return nil, err
	}

	if req.Name != nil {
		exists, err := s.repo.ExistsBySlug(ctx, entity.Slug, &id)
		if err != nil {
			return nil, fmt.Errorf("check slug: %w", err)
		}
		if exists {
			return nil, category.ErrDuplicateSlug
		}
	}

	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return entity, nil
}

func (s *categoryService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*category.Category, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if entity.IsActive == active {
		return entity, nil // idempotent
	}

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}

	entity.SetActive(active)
	s.invalidateListCache(ctx)
	return entity, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *categoryService) invalidateListCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, listCacheKeyActive, listCacheKeyAll); err != nil {
		logger.Error("category list cache invalidation failed", err)
	}
}
