package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"legalblog-backend/internal/domains/page"
)

const pageColumns = "id, slug, title, sections, is_published, created_at, updated_at"

type postgresPageRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) page.Repository {
	return &postgresPageRepository{pool: pool}
}

func scanPage(row pgx.Row) (*page.Page, error) {
	p := &page.Page{}
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Sections, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresPageRepository) Create(ctx context.Context, p *page.Page) error {
	query := `
		INSERT INTO pages (id, slug, title, sections, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Slug, p.Title, p.Sections, p.IsPublished, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return page.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create page: %w", err)
	}

	return nil
}

func (r *postgresPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*page.Page, error) {
	query := fmt.Sprintf(`SELECT %s FROM pages WHERE id = $1`, pageColumns)

	p, err := scanPage(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, page.ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	return p, nil
}

func (r *postgresPageRepository) GetBySlug(ctx context.Context, slug string) (*page.Page, error) {
	query := fmt.Sprintf(`SELECT %s FROM pages WHERE slug = $1`, pageColumns)

	p, err := scanPage(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, page.ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to get page by slug: %w", err)
	}

	return p, nil
}

func (r *postgresPageRepository) GetAll(ctx context.Context, includeUnpublished bool) ([]*page.Page, error) {
	query := fmt.Sprintf(`SELECT %s FROM pages`, pageColumns)
	if !includeUnpublished {
		query += ` WHERE is_published = TRUE`
	}
	query += ` ORDER BY title ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var pages []*page.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pages: %w", err)
	}

	return pages, nil
}

func (r *postgresPageRepository) Update(ctx context.Context, p *page.Page) error {
	query := `
		UPDATE pages
		SET slug = $2, title = $3, sections = $4, is_published = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		p.ID, p.Slug, p.Title, p.Sections, p.IsPublished, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return page.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to update page: %w", err)
	}
	if result.RowsAffected() == 0 {
		return page.ErrPageNotFound
	}

	return nil
}

func (r *postgresPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}
	if result.RowsAffected() == 0 {
		return page.ErrPageNotFound
	}
	return nil
}
