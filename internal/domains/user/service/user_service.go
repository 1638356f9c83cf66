package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"legalblog-backend/internal/domains/user"
	"legalblog-backend/internal/shared/utils"
	"legalblog-backend/pkg/cache"
	"legalblog-backend/pkg/jwt"
	"legalblog-backend/pkg/logger"
)

const bcryptCost = 12

type userService struct {
	repo         user.Repository
	tokens       *jwt.Manager
	mailer       user.Mailer
	denylist     cache.Cache
	accessExpiry time.Duration
}

func NewUserService(repo user.Repository, tokens *jwt.Manager, mailer user.Mailer, denylist cache.Cache, accessExpiry time.Duration) user.Service {
	return &userService{
		repo:         repo,
		tokens:       tokens,
		mailer:       mailer,
		denylist:     denylist,
		accessExpiry: accessExpiry,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	verificationToken, err := generateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	now := time.Now()
	newUser := &user.User{
		ID:                 uuid.New(),
		Email:              email,
		PasswordHash:       string(passwordHash),
		FullName:           strings.TrimSpace(req.FullName),
		Role:               user.RoleReader,
		IsVerified:         false,
		VerificationToken:  &verificationToken,
		VerificationSentAt: &now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationEmail(ctx, newUser.Email, newUser.FullName, verificationToken); err != nil {
		logger.Error("failed to queue verification email", err)
	}

	dto := newUser.ToDTO()
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		// Never reveal whether the email exists.
		return nil, user.ErrInvalidCredentials
	}

	if u.IsBlocked {
		return nil, user.ErrUserBlocked
	}
	if !u.IsVerified {
		return nil, user.ErrUserNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	if err := s.repo.UpdateLastLogin(ctx, u.ID); err != nil {
		logger.Error("failed to update last login", err)
	}

	return s.buildLoginResponse(u)
}

func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (*user.LoginResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	var denied bool
	if hit, err := s.denylist.Get(ctx, denylistKey(refreshToken), &denied); err != nil {
		logger.Error("failed to check token denylist", err)
	} else if hit {
		return nil, user.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	// Re-read the account so revoked roles and blocks take effect on the
	// next refresh, not at token expiry.
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}
	if u.IsBlocked {
		return nil, user.ErrUserBlocked
	}

	return s.buildLoginResponse(u)
}

// Logout denylists the refresh token until it would have expired anyway.
// Access tokens stay valid for their short lifetime; only the long-lived
// credential is revoked.
func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return user.ErrInvalidToken
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil // already dead
	}

	if err := s.denylist.Set(ctx, denylistKey(refreshToken), true, ttl); err != nil {
		return fmt.Errorf("denylist refresh token: %w", err)
	}

	return nil
}

func denylistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token:denied:" + hex.EncodeToString(sum[:])
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	u, err := s.repo.FindByVerificationToken(ctx, token)
	if err != nil {
		return err
	}

	if u.IsVerified {
		return nil // idempotent
	}

	return s.repo.MarkAsVerified(ctx, u.ID)
}

func (s *userService) ResendVerification(ctx context.Context, email string) error {
	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Same silence as ForgotPassword.
		return nil
	}

	if u.IsVerified {
		return nil
	}

	token, err := generateSecureToken(32)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	now := time.Now()
	u.VerificationToken = &token
	u.VerificationSentAt = &now

	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	if err := s.mailer.SendVerificationEmail(ctx, u.Email, u.FullName, token); err != nil {
		logger.Error("failed to queue verification email", err)
	}

	return nil
}

func (s *userService) ForgotPassword(ctx context.Context, req user.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		// Always succeed so the endpoint cannot be used to probe emails.
		return nil
	}

	token, err := generateSecureToken(32)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	expiresAt := time.Now().Add(user.ResetTokenTTL)
	u.ResetToken = &token
	u.ResetTokenExpiresAt = &expiresAt

	if err := s.repo.Update(ctx, u); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	if err := s.mailer.SendResetPasswordEmail(ctx, u.Email, u.FullName, token); err != nil {
		logger.Error("failed to queue reset email", err)
	}

	return nil
}

func (s *userService) ResetPassword(ctx context.Context, req user.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.repo.FindByResetToken(ctx, req.Token)
	if err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, u.ID, string(passwordHash))
}

func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, req user.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return user.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.NewPassword)) == nil {
		return user.ErrSamePassword
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, string(passwordHash))
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req user.UpdateProfileRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		u.FullName = strings.TrimSpace(req.FullName)
	}
	if req.Bio != "" {
		u.Bio = req.Bio
	}
	if req.AvatarURL != "" {
		u.AvatarURL = req.AvatarURL
	}
	if req.SocialLinks != nil {
		u.SocialLinks = *req.SocialLinks
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

// ========================================
// ADMIN
// ========================================

func (s *userService) ListUsers(ctx context.Context, req user.ListUsersRequest) (*user.ListUsersResponse, error) {
	var filter user.ListFilter
	if req.Role != "" {
		role, err := user.ParseRole(req.Role)
		if err != nil {
			return nil, err
		}
		filter.Role = &role
	}
	filter.IsBlocked = req.IsBlocked
	filter.IsVerified = req.IsVerified
	filter.Search = req.Search

	page, limit := utils.NormalizePagination(req.Page, req.Limit)

	users, total, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	dtos := make([]user.UserDTO, len(users))
	for i := range users {
		dtos[i] = users[i].ToDTO()
	}

	return &user.ListUsersResponse{
		Users:      dtos,
		TotalCount: total,
	}, nil
}

func (s *userService) UpdateUserRole(ctx context.Context, userID uuid.UUID, req user.UpdateRoleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	role, err := user.ParseRole(req.Role)
	if err != nil {
		return err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if u.Role == user.RoleAdmin && role != user.RoleAdmin {
		if err := s.ensureNotLastAdmin(ctx); err != nil {
			return err
		}
	}

	return s.repo.UpdateRole(ctx, userID, role)
}

func (s *userService) SetUserBlocked(ctx context.Context, userID uuid.UUID, req user.SetBlockedRequest) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if req.IsBlocked && u.Role == user.RoleAdmin {
		if err := s.ensureNotLastAdmin(ctx); err != nil {
			return err
		}
	}

	return s.repo.SetBlocked(ctx, userID, req.IsBlocked)
}

// ensureNotLastAdmin keeps at least one admin able to sign in.
func (s *userService) ensureNotLastAdmin(ctx context.Context) error {
	count, err := s.repo.CountByRole(ctx, user.RoleAdmin)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count <= 1 {
		return user.ErrLastAdmin
	}
	return nil
}

// ========================================
// HELPERS
// ========================================

func (s *userService) buildLoginResponse(u *user.User) (*user.LoginResponse, error) {
	accessToken, err := s.tokens.GenerateAccessToken(u.ID.String(), u.Email, u.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.accessExpiry),
		User:         u.ToDTO(),
	}, nil
}

func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
