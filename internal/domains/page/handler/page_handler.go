package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"legalblog-backend/internal/domains/page"
	"legalblog-backend/internal/shared/response"
)

type PageHandler struct {
	service page.Service
}

func NewPageHandler(service page.Service) *PageHandler {
	return &PageHandler{service: service}
}

func respondPageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, page.ErrPageNotFound):
		response.NotFound(c, "page not found")
	case errors.Is(err, page.ErrDuplicateSlug):
		response.Conflict(c, "a page with this slug already exists")
	default:
		response.InternalServerError(c, "something went wrong")
	}
}

// GetPage handles GET /api/v1/pages/:slug
func (h *PageHandler) GetPage(c *gin.Context) {
	isAdmin := c.GetString("role") == "admin"

	p, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"), isAdmin)
	if err != nil {
		respondPageError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

// ListPages handles GET /api/v1/admin/pages
func (h *PageHandler) ListPages(c *gin.Context) {
	pages, err := h.service.List(c.Request.Context(), true)
	if err != nil {
		respondPageError(c, err)
		return
	}

	response.Success(c, http.StatusOK, pages)
}

// CreatePage handles POST /api/v1/admin/pages
func (h *PageHandler) CreatePage(c *gin.Context) {
	var req page.CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondPageError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// UpdatePage handles PUT /api/v1/admin/pages/:id
func (h *PageHandler) UpdatePage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid page id")
		return
	}

	var req page.UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondPageError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// DeletePage handles DELETE /api/v1/admin/pages/:id
func (h *PageHandler) DeletePage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid page id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondPageError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "page deleted"})
}
