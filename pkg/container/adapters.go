package container

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"legalblog-backend/internal/domains/blog"
	"legalblog-backend/internal/domains/comment"
	"legalblog-backend/internal/domains/media"
	"legalblog-backend/internal/domains/user"
)

// The adapters below satisfy the narrow directory interfaces each domain
// declares for itself. They are the only place cross-domain knowledge lives;
// the domains themselves never import each other.

// =====================================================
// USER -> OTHER DOMAINS
// =====================================================

type accountAdapter struct {
	users user.Repository
}

func (a *accountAdapter) resolve(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return a.users.FindByID(ctx, id)
}

// ResolveAccount implements blog.AccountDirectory. An unknown account gets
// the same answer as an unauthorized one.
func (a *accountAdapter) ResolveAccount(ctx context.Context, id uuid.UUID) (*blog.Actor, error) {
	u, err := a.resolve(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, blog.ErrForbidden
		}
		return nil, err
	}

	return &blog.Actor{
		ID:        u.ID,
		Role:      blog.Role(u.Role),
		IsBlocked: u.IsBlocked,
	}, nil
}

type commentAccountAdapter struct {
	users user.Repository
}

func (a *commentAccountAdapter) ResolveAccount(ctx context.Context, id uuid.UUID) (*comment.Actor, error) {
	u, err := a.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, comment.ErrForbidden
		}
		return nil, err
	}

	return &comment.Actor{
		ID:        u.ID,
		IsAdmin:   u.Role == user.RoleAdmin,
		IsBlocked: u.IsBlocked,
	}, nil
}

type mediaAccountAdapter struct {
	users user.Repository
}

func (a *mediaAccountAdapter) ResolveAccount(ctx context.Context, id uuid.UUID) (*media.Actor, error) {
	u, err := a.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, media.ErrForbidden
		}
		return nil, err
	}

	return &media.Actor{
		ID:        u.ID,
		IsAdmin:   u.Role == user.RoleAdmin,
		IsBlocked: u.IsBlocked,
	}, nil
}

// emailAdapter implements notification.EmailDirectory.
type emailAdapter struct {
	users user.Repository
}

func (a *emailAdapter) EmailOf(ctx context.Context, id uuid.UUID) (string, error) {
	u, err := a.users.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Email, nil
}

// =====================================================
// BLOG -> OTHER DOMAINS
// =====================================================

// postAdapter exposes posts to the comment and media domains.
type postAdapter struct {
	posts blog.Repository
}

// IsPublished implements comment.PostDirectory. Missing posts are simply
// not published.
func (a *postAdapter) IsPublished(ctx context.Context, postID uuid.UUID) (bool, error) {
	p, err := a.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, blog.ErrPostNotFound) {
			return false, nil
		}
		return false, err
	}
	return p.Status == blog.StatusPublished, nil
}

// OwnerOf implements media.PostDirectory.
func (a *postAdapter) OwnerOf(ctx context.Context, postID uuid.UUID) (uuid.UUID, error) {
	p, err := a.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, blog.ErrPostNotFound) {
			return uuid.Nil, media.ErrPostNotFound
		}
		return uuid.Nil, err
	}
	return p.AuthorID, nil
}
