package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"legalblog-backend/internal/domains/media"
	"legalblog-backend/internal/shared/response"
)

// maxUploadBytes bounds the multipart read before image validation runs.
const maxUploadBytes = 10 * 1024 * 1024

type MediaHandler struct {
	service media.Service
}

func NewMediaHandler(service media.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

func respondMediaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, media.ErrAssetNotFound):
		response.NotFound(c, "media asset not found")
	case errors.Is(err, media.ErrPostNotFound):
		response.NotFound(c, "post not found")
	case errors.Is(err, media.ErrForbidden):
		response.Forbidden(c, "you cannot manage media for this post")
	case errors.Is(err, media.ErrAccountBlocked):
		response.Forbidden(c, "account is blocked")
	case errors.Is(err, media.ErrInvalidImage):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}

func mediaActorID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		response.Unauthorized(c, "invalid identity")
		return uuid.Nil, false
	}
	return id, true
}

// UploadMedia handles POST /api/v1/posts/:id/media
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	actorID, ok := mediaActorID(c)
	if !ok {
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file field")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.BadRequest(c, "file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		response.InternalServerError(c, "failed to read uploaded file")
		return
	}
	if int64(len(data)) > maxUploadBytes {
		response.BadRequest(c, "file too large")
		return
	}

	asset, err := h.service.Upload(c.Request.Context(), postID, actorID, media.UploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		respondMediaError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, asset)
}

// ListMedia handles GET /api/v1/posts/:id/media
func (h *MediaHandler) ListMedia(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	assets, err := h.service.ListByPost(c.Request.Context(), postID)
	if err != nil {
		respondMediaError(c, err)
		return
	}

	response.Success(c, http.StatusOK, assets)
}

// DeleteMedia handles DELETE /api/v1/media/:id
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	actorID, ok := mediaActorID(c)
	if !ok {
		return
	}

	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid media id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), assetID, actorID); err != nil {
		respondMediaError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "media deleted"})
}
