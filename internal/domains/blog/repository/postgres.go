package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"legalblog-backend/internal/domains/blog"
	"legalblog-backend/internal/shared/utils"
	"legalblog-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresPostRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) blog.Repository {
	return &postgresPostRepository{pool: pool}
}

const postColumns = `
	id, author_id, title, slug, content, category_id, tags,
	cover_image_url, status, rejection_reason, view_count,
	created_at, updated_at, published_at`

func scanPost(row pgx.Row) (*blog.Post, error) {
	post := &blog.Post{}
	var tags []string

	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Slug,
		&post.Content,
		&post.CategoryID,
		pq.Array(&tags),
		&post.CoverImageURL,
		&post.Status,
		&post.RejectionReason,
		&post.ViewCount,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.PublishedAt,
	)
	if err != nil {
		return nil, err
	}

	post.Tags = tags
	return post, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresPostRepository) Create(ctx context.Context, post *blog.Post) error {
	query := `
		INSERT INTO posts (
			id, author_id, title, slug, content, category_id, tags,
			cover_image_url, status, rejection_reason, view_count,
			created_at, updated_at, published_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.AuthorID,
		post.Title,
		post.Slug,
		post.Content,
		post.CategoryID,
		pq.Array(post.Tags),
		post.CoverImageURL,
		post.Status,
		post.RejectionReason,
		post.ViewCount,
		post.CreatedAt,
		post.UpdatedAt,
		post.PublishedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return blog.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// =====================================================
// GET
// =====================================================

func (r *postgresPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	query := `SELECT` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

func (r *postgresPostRepository) GetBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	query := `SELECT` + postColumns + ` FROM posts WHERE slug = $1`

	post, err := scanPost(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}

	return post, nil
}

// =====================================================
// UPDATE
// =====================================================

// Update is a single conditional write keyed by id. Concurrent transitions
// race here and the last write wins; every transition is a full overwrite
// of status/rejection_reason/updated_at, never an increment.
func (r *postgresPostRepository) Update(ctx context.Context, post *blog.Post) error {
	query := `
		UPDATE posts
		SET
			title = $2,
			slug = $3,
			content = $4,
			category_id = $5,
			tags = $6,
			cover_image_url = $7,
			status = $8,
			rejection_reason = $9,
			updated_at = $10,
			published_at = $11
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Content,
		post.CategoryID,
		pq.Array(post.Tags),
		post.CoverImageURL,
		post.Status,
		post.RejectionReason,
		post.UpdatedAt,
		post.PublishedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return blog.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to update post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return blog.ErrPostNotFound
	}

	return nil
}

// =====================================================
// DELETE
// =====================================================

// Delete removes the post together with its comments and media metadata in
// one transaction, so a crash between statements cannot leave orphan rows.
func (r *postgresPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete post comments: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM media_assets WHERE post_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete post media: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		if result.RowsAffected() == 0 {
			return blog.ErrPostNotFound
		}

		return nil
	})
}

// =====================================================
// LIST
// =====================================================

// List builds the WHERE clause in two stages: the visibility predicate
// derived from the viewer always comes first and cannot be bypassed by
// caller filters; user-supplied filters narrow the result further. The
// count runs over the same predicate before LIMIT/OFFSET.
func (r *postgresPostRepository) List(ctx context.Context, viewer blog.Viewer, filter blog.Filter, page, limit int) ([]*blog.Post, int, error) {
	var clauses []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	// Stage 1: visibility predicate (unconditional).
	switch {
	case viewer.Role == blog.RoleAdmin:
		if filter.MineOnly {
			clauses = append(clauses, "author_id = "+arg(viewer.ID))
		}
	case viewer.Role == blog.RoleAuthor && filter.MineOnly:
		clauses = append(clauses, "author_id = "+arg(viewer.ID))
	case viewer.Role == blog.RoleAuthor:
		clauses = append(clauses, "(status = "+arg(blog.StatusPublished)+" OR author_id = "+arg(viewer.ID)+")")
	default:
		// Anonymous and readers only ever observe published posts.
		clauses = append(clauses, "status = "+arg(blog.StatusPublished))
		if filter.MineOnly {
			clauses = append(clauses, "author_id = "+arg(viewer.ID))
		}
	}

	// Stage 2: user-supplied filters.
	if filter.Status != nil {
		clauses = append(clauses, "status = "+arg(*filter.Status))
	}
	if filter.AuthorID != nil {
		clauses = append(clauses, "author_id = "+arg(*filter.AuthorID))
	}
	if filter.CategoryID != nil {
		clauses = append(clauses, "category_id = "+arg(*filter.CategoryID))
	}
	if s := strings.TrimSpace(filter.SearchText); s != "" {
		pattern := "%" + s + "%"
		clauses = append(clauses, "(title ILIKE "+arg(pattern)+" OR content ILIKE "+arg(pattern)+")")
	}
	if filter.DateOnOrAfter != nil {
		clauses = append(clauses, "created_at >= "+arg(*filter.DateOnOrAfter))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	// Count over the full filtered set first.
	var total int
	countQuery := `SELECT COUNT(*) FROM posts` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	pageQuery := `SELECT` + postColumns + ` FROM posts` + where +
		` ORDER BY created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(utils.Offset(page, limit))

	rows, err := r.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*blog.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, total, nil
}

// =====================================================
// VIEW COUNT
// =====================================================

func (r *postgresPostRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE posts SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}
