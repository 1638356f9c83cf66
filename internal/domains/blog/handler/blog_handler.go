package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"legalblog-backend/internal/domains/blog"
	"legalblog-backend/internal/domains/blog/service"
	"legalblog-backend/internal/shared/response"
	"legalblog-backend/internal/shared/utils"
)

type BlogHandler struct {
	service blog.Service
	export  *service.ExportService
}

func NewBlogHandler(svc blog.Service, export *service.ExportService) *BlogHandler {
	return &BlogHandler{service: svc, export: export}
}

// =====================================================
// IDENTITY HELPERS
// =====================================================

// viewerFromContext builds the listing viewer. Anonymous requests yield a
// zero Viewer.
func viewerFromContext(c *gin.Context) blog.Viewer {
	raw := c.GetString("user_id")
	if raw == "" {
		return blog.Viewer{}
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return blog.Viewer{}
	}

	return blog.Viewer{ID: id, Role: blog.Role(c.GetString("role"))}
}

func actorID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		response.Unauthorized(c, "invalid identity")
		return uuid.Nil, false
	}
	return id, true
}

// =====================================================
// ERROR MAPPING
// =====================================================

func respondBlogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, blog.ErrPostNotFound):
		response.NotFound(c, "post not found")
	case errors.Is(err, blog.ErrForbidden):
		response.Forbidden(c, "you do not have permission to perform this action")
	case errors.Is(err, blog.ErrAccountBlocked):
		response.Forbidden(c, "account is blocked")
	case errors.Is(err, blog.ErrInvalidStatus):
		response.BadRequest(c, "invalid status value")
	case errors.Is(err, blog.ErrReasonRequired):
		response.BadRequest(c, "a rejection reason is required")
	case errors.Is(err, blog.ErrDuplicateSlug):
		response.Conflict(c, "a post with this slug already exists")
	default:
		response.InternalServerError(c, "something went wrong")
	}
}

// =====================================================
// WRITE ENDPOINTS
// =====================================================

// CreatePost handles POST /api/v1/posts
func (h *BlogHandler) CreatePost(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req blog.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondBlogError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, blog.ToDTO(post))
}

// UpdatePost handles PUT /api/v1/posts/:id
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	var req blog.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.service.UpdateContent(c.Request.Context(), postID, actor, req)
	if err != nil {
		respondBlogError(c, err)
		return
	}

	response.Success(c, http.StatusOK, blog.ToDTO(post))
}

// TransitionPost handles PATCH /api/v1/posts/:id/status
func (h *BlogHandler) TransitionPost(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	var req blog.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.service.RequestTransition(c.Request.Context(), postID, actor, req)
	if err != nil {
		respondBlogError(c, err)
		return
	}

	response.Success(c, http.StatusOK, blog.ToDTO(post))
}

// DeletePost handles DELETE /api/v1/posts/:id
func (h *BlogHandler) DeletePost(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), postID, actor); err != nil {
		respondBlogError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "post deleted"})
}

// =====================================================
// READ ENDPOINTS
// =====================================================

// GetPost handles GET /api/v1/posts/:id
func (h *BlogHandler) GetPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	post, err := h.service.GetByID(c.Request.Context(), viewerFromContext(c), postID)
	if err != nil {
		respondBlogError(c, err)
		return
	}

	response.Success(c, http.StatusOK, blog.ToDTO(post))
}

// GetPostBySlug handles GET /api/v1/posts/slug/:slug
func (h *BlogHandler) GetPostBySlug(c *gin.Context) {
	post, err := h.service.GetBySlug(c.Request.Context(), viewerFromContext(c), c.Param("slug"))
	if err != nil {
		respondBlogError(c, err)
		return
	}

	response.Success(c, http.StatusOK, blog.ToDTO(post))
}

// ListPosts handles GET /api/v1/posts
func (h *BlogHandler) ListPosts(c *gin.Context) {
	var query blog.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	filter, err := filterFromQuery(query)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	viewer := viewerFromContext(c)
	page, limit := utils.NormalizePagination(query.Page, query.Limit)

	posts, total, err := h.service.List(c.Request.Context(), viewer, filter, page, limit)
	if err != nil {
		respondBlogError(c, err)
		return
	}

	dtos := make([]blog.PostDTO, 0, len(posts))
	for _, post := range posts {
		dtos = append(dtos, blog.ToDTO(post))
	}

	response.SuccessWithMeta(c, http.StatusOK, dtos, &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: utils.TotalPages(total, limit),
	})
}

// ListMyPosts handles GET /api/v1/posts/mine
func (h *BlogHandler) ListMyPosts(c *gin.Context) {
	var query blog.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	filter, err := filterFromQuery(query)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter.MineOnly = true

	viewer := viewerFromContext(c)
	if viewer.ID == uuid.Nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	page, limit := utils.NormalizePagination(query.Page, query.Limit)

	posts, total, err := h.service.List(c.Request.Context(), viewer, filter, page, limit)
	if err != nil {
		respondBlogError(c, err)
		return
	}

	dtos := make([]blog.PostDTO, 0, len(posts))
	for _, post := range posts {
		dtos = append(dtos, blog.ToDTO(post))
	}

	response.SuccessWithMeta(c, http.StatusOK, dtos, &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: utils.TotalPages(total, limit),
	})
}

// =====================================================
// EXPORT
// =====================================================

// ExportPosts handles GET /api/v1/admin/posts/export
func (h *BlogHandler) ExportPosts(c *gin.Context) {
	var query blog.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	filter, err := filterFromQuery(query)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	data, err := h.export.ExportPosts(c.Request.Context(), viewerFromContext(c), filter)
	if err != nil {
		respondBlogError(c, err)
		return
	}

	filename := fmt.Sprintf("posts_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// =====================================================
// QUERY PARSING
// =====================================================

func filterFromQuery(query blog.ListQuery) (blog.Filter, error) {
	var filter blog.Filter

	if query.Status != "" {
		status, err := blog.ParseStatus(query.Status)
		if err != nil {
			return filter, fmt.Errorf("invalid status filter")
		}
		filter.Status = &status
	}
	if query.AuthorID != "" {
		id, err := uuid.Parse(query.AuthorID)
		if err != nil {
			return filter, fmt.Errorf("invalid author_id filter")
		}
		filter.AuthorID = &id
	}
	if query.CategoryID != "" {
		id, err := uuid.Parse(query.CategoryID)
		if err != nil {
			return filter, fmt.Errorf("invalid category_id filter")
		}
		filter.CategoryID = &id
	}
	filter.SearchText = query.Search
	if query.DateOnOrAfter != "" {
		from, err := time.Parse(time.RFC3339, query.DateOnOrAfter)
		if err != nil {
			// Accept a bare date too.
			from, err = time.Parse("2006-01-02", query.DateOnOrAfter)
			if err != nil {
				return filter, fmt.Errorf("invalid from filter, expected RFC 3339")
			}
		}
		filter.DateOnOrAfter = &from
	}

	return filter, nil
}
