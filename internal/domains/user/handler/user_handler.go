package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"legalblog-backend/internal/domains/user"
	"legalblog-backend/internal/shared/response"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// =====================================================
// ERROR MAPPING
// =====================================================

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "user not found")
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(c, "email already registered")
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthorized(c, "invalid email or password")
	case errors.Is(err, user.ErrInvalidToken):
		response.Unauthorized(c, "invalid or expired token")
	case errors.Is(err, user.ErrUserNotVerified):
		response.Forbidden(c, "email address not verified")
	case errors.Is(err, user.ErrUserBlocked):
		response.Forbidden(c, "account is blocked")
	case errors.Is(err, user.ErrSamePassword):
		response.BadRequest(c, "new password must differ from the current password")
	case errors.Is(err, user.ErrInvalidRole):
		response.BadRequest(c, "invalid role value")
	case errors.Is(err, user.ErrLastAdmin):
		response.Conflict(c, "cannot demote or block the last admin")
	case errors.Is(err, user.ErrForbidden):
		response.Forbidden(c, "insufficient permissions")
	default:
		response.InternalServerError(c, "something went wrong")
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		response.Unauthorized(c, "invalid identity")
		return uuid.Nil, false
	}
	return id, true
}

// =====================================================
// AUTHENTICATION
// =====================================================

// Register handles POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// Login handles POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// RefreshToken handles POST /api/v1/auth/refresh
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req user.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Logout handles POST /api/v1/auth/logout
func (h *UserHandler) Logout(c *gin.Context) {
	var req user.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

// VerifyEmail handles GET /api/v1/auth/verify?token=...
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.BadRequest(c, "token is required")
		return
	}

	if err := h.service.VerifyEmail(c.Request.Context(), token); err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "email verified"})
}

// ResendVerification handles POST /api/v1/auth/resend-verification
func (h *UserHandler) ResendVerification(c *gin.Context) {
	var req user.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.ResendVerification(c.Request.Context(), req.Email); err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "if the email exists, a verification link has been sent"})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req user.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req); err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "if the email exists, a reset link has been sent"})
}

// ResetPassword handles POST /api/v1/auth/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req user.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password has been reset"})
}

// ChangePassword handles POST /api/v1/users/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req user.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password changed"})
}

// =====================================================
// PROFILE
// =====================================================

// GetProfile handles GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dto, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// UpdateProfile handles PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	dto, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// =====================================================
// ADMIN
// =====================================================

// ListUsers handles GET /api/v1/admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req user.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	resp, err := h.service.ListUsers(c.Request.Context(), req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// UpdateUserRole handles PATCH /api/v1/admin/users/:id/role
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req user.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.UpdateUserRole(c.Request.Context(), userID, req); err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "role updated"})
}

// SetUserBlocked handles PATCH /api/v1/admin/users/:id/blocked
func (h *UserHandler) SetUserBlocked(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req user.SetBlockedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.SetUserBlocked(c.Request.Context(), userID, req); err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "user updated"})
}
