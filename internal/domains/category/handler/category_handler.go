package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"legalblog-backend/internal/domains/category"
	"legalblog-backend/internal/shared/response"
)

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, category.ErrCategoryNotFound):
		response.NotFound(c, "category not found")
	case errors.Is(err, category.ErrDuplicateSlug):
		response.Conflict(c, "a category with this name already exists")
	case errors.Is(err, category.ErrHasPosts):
		response.Conflict(c, "category still has posts")
	default:
		response.InternalServerError(c, "something went wrong")
	}
}

// ListCategories handles GET /api/v1/categories
// Admins see inactive categories too via ?include_inactive=true.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true" && c.GetString("role") == "admin"

	categories, err := h.service.List(c.Request.Context(), includeInactive)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	response.Success(c, http.StatusOK, categories)
}

// GetCategory handles GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// Fall back to slug lookup so /categories/data-protection works.
		cat, err := h.service.GetBySlug(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondCategoryError(c, err)
			return
		}
		response.Success(c, http.StatusOK, cat)
		return
	}

	cat, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cat)
}

// CreateCategory handles POST /api/v1/admin/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req category.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cat, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, cat)
}

// UpdateCategory handles PUT /api/v1/admin/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	var req category.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cat, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cat)
}

// SetCategoryActive handles PATCH /api/v1/admin/categories/:id/active
func (h *CategoryHandler) SetCategoryActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	var req category.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cat, err := h.service.SetActive(c.Request.Context(), id, req.IsActive)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cat)
}

// DeleteCategory handles DELETE /api/v1/admin/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondCategoryError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "category deleted"})
}
