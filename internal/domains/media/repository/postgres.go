package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"legalblog-backend/internal/domains/media"
)

const assetColumns = "id, post_id, uploader_id, key, thumbnail_key, url, thumbnail_url, file_name, content_type, size_bytes, created_at"

type postgresMediaRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) media.Repository {
	return &postgresMediaRepository{pool: pool}
}

func scanAsset(row pgx.Row) (*media.Asset, error) {
	a := &media.Asset{}
	err := row.Scan(
		&a.ID, &a.PostID, &a.UploaderID, &a.Key, &a.ThumbnailKey,
		&a.URL, &a.ThumbnailURL, &a.FileName, &a.ContentType, &a.SizeBytes, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *postgresMediaRepository) Create(ctx context.Context, a *media.Asset) error {
	query := `
		INSERT INTO media_assets (id, post_id, uploader_id, key, thumbnail_key, url, thumbnail_url, file_name, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.PostID, a.UploaderID, a.Key, a.ThumbnailKey,
		a.URL, a.ThumbnailURL, a.FileName, a.ContentType, a.SizeBytes, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create media asset: %w", err)
	}

	return nil
}

func (r *postgresMediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*media.Asset, error) {
	query := fmt.Sprintf(`SELECT %s FROM media_assets WHERE id = $1`, assetColumns)

	a, err := scanAsset(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, media.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get media asset: %w", err)
	}

	return a, nil
}

func (r *postgresMediaRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]*media.Asset, error) {
	query := fmt.Sprintf(`SELECT %s FROM media_assets WHERE post_id = $1 ORDER BY created_at ASC`, assetColumns)

	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media assets: %w", err)
	}
	defer rows.Close()

	var assets []*media.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media asset: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate media assets: %w", err)
	}

	return assets, nil
}

func (r *postgresMediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM media_assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete media asset: %w", err)
	}
	if result.RowsAffected() == 0 {
		return media.ErrAssetNotFound
	}
	return nil
}

func (r *postgresMediaRepository) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM media_assets WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete media assets for post: %w", err)
	}
	return nil
}
