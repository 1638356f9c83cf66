package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"legalblog-backend/internal/domains/media"
	"legalblog-backend/internal/infrastructure/storage"
	"legalblog-backend/pkg/logger"
)

type mediaService struct {
	repo      media.Repository
	store     media.ObjectStore
	processor *storage.ImageProcessor
	posts     media.PostDirectory
	accounts  media.AccountDirectory
}

func NewMediaService(
	repo media.Repository,
	store media.ObjectStore,
	processor *storage.ImageProcessor,
	posts media.PostDirectory,
	accounts media.AccountDirectory,
) media.Service {
	return &mediaService{
		repo:      repo,
		store:     store,
		processor: processor,
		posts:     posts,
		accounts:  accounts,
	}
}

// authorize checks that the actor may manage media for the post: the post's
// author, or an admin.
func (s *mediaService) authorize(ctx context.Context, postID, actorID uuid.UUID) error {
	actor, err := s.accounts.ResolveAccount(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.IsBlocked {
		return media.ErrAccountBlocked
	}

	ownerID, err := s.posts.OwnerOf(ctx, postID)
	if err != nil {
		return err
	}
	if ownerID != actor.ID && !actor.IsAdmin {
		return media.ErrForbidden
	}

	return nil
}

func (s *mediaService) Upload(ctx context.Context, postID, actorID uuid.UUID, in media.UploadInput) (*media.Asset, error) {
	if err := s.authorize(ctx, postID, actorID); err != nil {
		return nil, err
	}

	if err := s.processor.ValidateImage(in.Data); err != nil {
		return nil, fmt.Errorf("%w: %s", media.ErrInvalidImage, err)
	}

	assetID := uuid.New()
	ext := strings.ToLower(path.Ext(in.FileName))
	if ext == "" {
		ext = ".jpg"
	}

	key := fmt.Sprintf("posts/%s/%s%s", postID, assetID, ext)
	thumbKey := fmt.Sprintf("posts/%s/thumbs/%s.jpg", postID, assetID)

	url, err := s.store.Upload(ctx, key, in.Data, in.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	// A broken thumbnail should not fail the upload.
	var thumbURL string
	thumb, err := s.processor.Thumbnail(in.Data)
	if err != nil {
		logger.Error("failed to generate thumbnail", err)
		thumbKey = ""
	} else {
		thumbURL, err = s.store.Upload(ctx, thumbKey, thumb, "image/jpeg")
		if err != nil {
			logger.Error("failed to upload thumbnail", err)
			thumbKey, thumbURL = "", ""
		}
	}

	asset := &media.Asset{
		ID:           assetID,
		PostID:       postID,
		UploaderID:   actorID,
		Key:          key,
		ThumbnailKey: thumbKey,
		URL:          url,
		ThumbnailURL: thumbURL,
		FileName:     in.FileName,
		ContentType:  in.ContentType,
		SizeBytes:    int64(len(in.Data)),
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, asset); err != nil {
		// Orphaned objects are swept with the post prefix on post deletion.
		logger.Error("failed to persist media asset", err)
		return nil, err
	}

	return asset, nil
}

func (s *mediaService) ListByPost(ctx context.Context, postID uuid.UUID) ([]*media.Asset, error) {
	if _, err := s.posts.OwnerOf(ctx, postID); err != nil {
		return nil, err
	}
	return s.repo.ListByPost(ctx, postID)
}

func (s *mediaService) Delete(ctx context.Context, assetID, actorID uuid.UUID) error {
	asset, err := s.repo.GetByID(ctx, assetID)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, asset.PostID, actorID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, assetID); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, asset.Key); err != nil {
		logger.Error("failed to delete object", err)
	}
	if asset.ThumbnailKey != "" {
		if err := s.store.Delete(ctx, asset.ThumbnailKey); err != nil {
			logger.Error("failed to delete thumbnail", err)
		}
	}

	return nil
}
