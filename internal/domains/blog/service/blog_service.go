package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"legalblog-backend/internal/domains/blog"
	"legalblog-backend/internal/shared/utils"
	"legalblog-backend/pkg/logger"
)

// ObjectCleaner removes stored media for a post when it is deleted.
// Best-effort: failures are logged, the delete still succeeds.
type ObjectCleaner interface {
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type blogService struct {
	repo     blog.Repository
	accounts blog.AccountDirectory
	notifier blog.Notifier
	cleaner  ObjectCleaner
}

func NewBlogService(repo blog.Repository, accounts blog.AccountDirectory, notifier blog.Notifier, cleaner ObjectCleaner) blog.Service {
	return &blogService{
		repo:     repo,
		accounts: accounts,
		notifier: notifier,
		cleaner:  cleaner,
	}
}

// =====================================================
// GUARD
// =====================================================

// guardMutation enforces the shared preamble of every mutation, in order:
// blocked accounts fail first, then ownership/admin.
func (s *blogService) guardMutation(ctx context.Context, post *blog.Post, actorID uuid.UUID) (*blog.Actor, error) {
	actor, err := s.accounts.ResolveAccount(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if actor.IsBlocked {
		return nil, blog.ErrAccountBlocked
	}

	if !post.IsOwnedBy(actor.ID) && actor.Role != blog.RoleAdmin {
		return nil, blog.ErrForbidden
	}

	return actor, nil
}

// =====================================================
// CREATE
// =====================================================

func (s *blogService) Create(ctx context.Context, actorID uuid.UUID, req blog.CreatePostRequest) (*blog.Post, error) {
	actor, err := s.accounts.ResolveAccount(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if actor.IsBlocked {
		return nil, blog.ErrAccountBlocked
	}
	if actor.Role != blog.RoleAuthor && actor.Role != blog.RoleAdmin {
		return nil, blog.ErrForbidden
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		return nil, blog.ErrPostNotFound
	}

	post := blog.NewPost(actor.ID, req.Title, req.Content, categoryID, req.Tags, req.CoverImageURL)

	// Admins may create directly in any status; everyone else starts in
	// draft regardless of what the request says.
	if actor.Role == blog.RoleAdmin && req.Status != "" {
		requested, err := blog.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		effective, err := blog.EffectiveStatus(actor.Role, true, requested, req.Reason)
		if err != nil {
			return nil, err
		}
		post.ApplyTransition(effective, req.Reason)
	}

	if err := s.createWithSlugRetry(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// createWithSlugRetry appends a short id suffix when the title slug is
// already taken.
func (s *blogService) createWithSlugRetry(ctx context.Context, post *blog.Post) error {
	err := s.repo.Create(ctx, post)
	if !errors.Is(err, blog.ErrDuplicateSlug) {
		return err
	}

	post.Slug = fmt.Sprintf("%s-%s", post.Slug, post.ID.String()[:8])
	return s.repo.Create(ctx, post)
}

// =====================================================
// TRANSITION
// =====================================================

func (s *blogService) RequestTransition(ctx context.Context, postID, actorID uuid.UUID, req blog.TransitionRequest) (*blog.Post, error) {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	actor, err := s.guardMutation(ctx, post, actorID)
	if err != nil {
		return nil, err
	}

	requested, err := blog.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	effective, err := blog.EffectiveStatus(actor.Role, post.IsOwnedBy(actor.ID), requested, req.Reason)
	if err != nil {
		return nil, err
	}

	post.ApplyTransition(effective, req.Reason)

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}

	// Fire-and-forget: a failed notification never fails the transition.
	if err := s.notifier.NotifyStatusChanged(ctx, post, effective, req.Reason); err != nil {
		logger.Error("status change notification failed", err)
	}

	return post, nil
}

// =====================================================
// CONTENT EDIT
// =====================================================

func (s *blogService) UpdateContent(ctx context.Context, postID, actorID uuid.UUID, req blog.UpdatePostRequest) (*blog.Post, error) {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if _, err := s.guardMutation(ctx, post, actorID); err != nil {
		return nil, err
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		return nil, blog.ErrPostNotFound
	}

	post.Title = req.Title
	post.Slug = utils.GenerateSlug(req.Title)
	post.Content = req.Content
	post.CategoryID = categoryID
	post.Tags = req.Tags
	post.CoverImageURL = req.CoverImageURL
	// A content edit does not move the post through the state machine; only
	// the status endpoint does. It still refreshes updated_at.
	post.ApplyTransition(post.Status, derefReason(post.RejectionReason))

	if err := s.repo.Update(ctx, post); err != nil {
		if errors.Is(err, blog.ErrDuplicateSlug) {
			post.Slug = fmt.Sprintf("%s-%s", post.Slug, post.ID.String()[:8])
			if err := s.repo.Update(ctx, post); err != nil {
				return nil, err
			}
			return post, nil
		}
		return nil, err
	}

	return post, nil
}

// =====================================================
// DELETE
// =====================================================

func (s *blogService) Delete(ctx context.Context, postID, actorID uuid.UUID) error {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if _, err := s.guardMutation(ctx, post, actorID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		return err
	}

	if s.cleaner != nil {
		prefix := fmt.Sprintf("posts/%s/", postID)
		if err := s.cleaner.DeleteByPrefix(ctx, prefix); err != nil {
			logger.Error("failed to clean up post media", err)
		}
	}

	return nil
}

// =====================================================
// READS
// =====================================================

func (s *blogService) GetByID(ctx context.Context, viewer blog.Viewer, id uuid.UUID) (*blog.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.visible(post, viewer) {
		// Hidden statuses look like missing posts to keep drafts
		// unobservable.
		return nil, blog.ErrPostNotFound
	}

	return post, nil
}

func (s *blogService) GetBySlug(ctx context.Context, viewer blog.Viewer, slug string) (*blog.Post, error) {
	post, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if !s.visible(post, viewer) {
		return nil, blog.ErrPostNotFound
	}

	if post.Status == blog.StatusPublished {
		if err := s.repo.IncrementViewCount(ctx, post.ID); err != nil {
			logger.Error("failed to increment view count", err)
		} else {
			post.ViewCount++
		}
	}

	return post, nil
}

func (s *blogService) visible(post *blog.Post, viewer blog.Viewer) bool {
	if post.Status == blog.StatusPublished {
		return true
	}
	if viewer.Role == blog.RoleAdmin {
		return true
	}
	return viewer.ID != uuid.Nil && post.IsOwnedBy(viewer.ID)
}

func (s *blogService) List(ctx context.Context, viewer blog.Viewer, filter blog.Filter, page, limit int) ([]*blog.Post, int, error) {
	page, limit = utils.NormalizePagination(page, limit)
	return s.repo.List(ctx, viewer, filter, page, limit)
}

// =====================================================
// HELPERS
// =====================================================

func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func derefReason(reason *string) string {
	if reason == nil {
		return ""
	}
	return *reason
}
