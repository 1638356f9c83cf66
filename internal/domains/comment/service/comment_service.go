package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"legalblog-backend/internal/domains/comment"
	"legalblog-backend/internal/shared/utils"
)

type commentService struct {
	repo     comment.Repository
	posts    comment.PostDirectory
	accounts comment.AccountDirectory
}

func NewCommentService(repo comment.Repository, posts comment.PostDirectory, accounts comment.AccountDirectory) comment.Service {
	return &commentService{
		repo:     repo,
		posts:    posts,
		accounts: accounts,
	}
}

func (s *commentService) Create(ctx context.Context, postID, actorID uuid.UUID, req comment.CreateCommentRequest) (*comment.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	actor, err := s.accounts.ResolveAccount(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.IsBlocked {
		return nil, comment.ErrAccountBlocked
	}

	// Comments only attach to published posts; everything else looks like
	// a missing post.
	published, err := s.posts.IsPublished(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !published {
		return nil, comment.ErrPostNotFound
	}

	c := comment.NewComment(postID, actor.ID, req.Content)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *commentService) ListByPost(ctx context.Context, postID uuid.UUID, page, limit int) ([]*comment.Comment, int, error) {
	published, err := s.posts.IsPublished(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	if !published {
		return nil, 0, comment.ErrPostNotFound
	}

	page, limit = utils.NormalizePagination(page, limit)
	return s.repo.ListByPost(ctx, postID, page, limit)
}

func (s *commentService) Update(ctx context.Context, commentID, actorID uuid.UUID, req comment.UpdateCommentRequest) (*comment.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	actor, err := s.accounts.ResolveAccount(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.IsBlocked {
		return nil, comment.ErrAccountBlocked
	}

	// Edits are owner-only within the window; admins delete, they do not
	// rewrite other people's words.
	if !c.IsOwnedBy(actor.ID) {
		return nil, comment.ErrForbidden
	}
	if !c.CanBeEdited() {
		return nil, comment.ErrEditWindowClosed
	}

	c.Content = req.Content
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *commentService) Delete(ctx context.Context, commentID, actorID uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	actor, err := s.accounts.ResolveAccount(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.IsBlocked {
		return comment.ErrAccountBlocked
	}

	if !c.IsOwnedBy(actor.ID) && !actor.IsAdmin {
		return comment.ErrForbidden
	}

	return s.repo.Delete(ctx, commentID)
}
