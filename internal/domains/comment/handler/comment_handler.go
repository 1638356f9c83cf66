package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"legalblog-backend/internal/domains/comment"
	"legalblog-backend/internal/shared/response"
	"legalblog-backend/internal/shared/utils"
)

type CommentHandler struct {
	service comment.Service
}

func NewCommentHandler(service comment.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

func respondCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, comment.ErrCommentNotFound):
		response.NotFound(c, "comment not found")
	case errors.Is(err, comment.ErrPostNotFound):
		response.NotFound(c, "post not found")
	case errors.Is(err, comment.ErrForbidden):
		response.Forbidden(c, "you cannot modify this comment")
	case errors.Is(err, comment.ErrAccountBlocked):
		response.Forbidden(c, "account is blocked")
	case errors.Is(err, comment.ErrEditWindowClosed):
		response.Forbidden(c, "the edit window has closed")
	default:
		response.InternalServerError(c, "something went wrong")
	}
}

func commentActorID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		response.Unauthorized(c, "invalid identity")
		return uuid.Nil, false
	}
	return id, true
}

// CreateComment handles POST /api/v1/posts/:id/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	actorID, ok := commentActorID(c)
	if !ok {
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	var req comment.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), postID, actorID, req)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// ListComments handles GET /api/v1/posts/:id/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	var query struct {
		Page  int `form:"page"`
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	page, limit := utils.NormalizePagination(query.Page, query.Limit)

	comments, total, err := h.service.ListByPost(c.Request.Context(), postID, page, limit)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, comments, &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: utils.TotalPages(total, limit),
	})
}

// UpdateComment handles PUT /api/v1/comments/:id
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	actorID, ok := commentActorID(c)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	var req comment.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), commentID, actorID, req)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// DeleteComment handles DELETE /api/v1/comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	actorID, ok := commentActorID(c)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), commentID, actorID); err != nil {
		respondCommentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "comment deleted"})
}
