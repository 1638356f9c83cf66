package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"legalblog-backend/internal/domains/user"
	"legalblog-backend/pkg/cache"
	"legalblog-backend/pkg/logger"
)

// postgresRepository backs user.Repository with postgres plus a cache-aside
// layer on FindByID. Cache failures are logged and fall through to the
// database.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) user.Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

const userCacheTTL = 5 * time.Minute

func userCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

const userColumns = `
	id, email, password_hash, full_name, bio, avatar_url, social_links,
	role, is_blocked, is_verified,
	verification_token, verification_sent_at,
	reset_token, reset_token_expires_at,
	last_login_at, created_at, updated_at`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.Bio,
		&u.AvatarURL,
		&u.SocialLinks,
		&u.Role,
		&u.IsBlocked,
		&u.IsVerified,
		&u.VerificationToken,
		&u.VerificationSentAt,
		&u.ResetToken,
		&u.ResetTokenExpiresAt,
		&u.LastLoginAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ========================================
// BASIC CRUD
// ========================================

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, full_name, bio, avatar_url, social_links,
			role, is_blocked, is_verified,
			verification_token, verification_sent_at,
			reset_token, reset_token_expires_at,
			last_login_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.FullName,
		u.Bio,
		u.AvatarURL,
		u.SocialLinks,
		u.Role,
		u.IsBlocked,
		u.IsVerified,
		u.VerificationToken,
		u.VerificationSentAt,
		u.ResetToken,
		u.ResetTokenExpiresAt,
		u.LastLoginAt,
		u.CreatedAt,
		u.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var cached user.User
	if found, err := r.cache.Get(ctx, userCacheKey(id), &cached); err != nil {
		logger.Error("user cache read failed", err)
	} else if found {
		return &cached, nil
	}

	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := r.cache.Set(ctx, userCacheKey(id), u, userCacheTTL); err != nil {
		logger.Error("user cache write failed", err)
	}

	return u, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return u, nil
}

func (r *postgresRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET
			email = $2,
			full_name = $3,
			bio = $4,
			avatar_url = $5,
			social_links = $6,
			role = $7,
			is_blocked = $8,
			is_verified = $9,
			verification_token = $10,
			verification_sent_at = $11,
			reset_token = $12,
			reset_token_expires_at = $13,
			updated_at = $14
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		u.ID,
		u.Email,
		u.FullName,
		u.Bio,
		u.AvatarURL,
		u.SocialLinks,
		u.Role,
		u.IsBlocked,
		u.IsVerified,
		u.VerificationToken,
		u.VerificationSentAt,
		u.ResetToken,
		u.ResetTokenExpiresAt,
		time.Now(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, u.ID)
	return nil
}

// ========================================
// AUTHENTICATION
// ========================================

func (r *postgresRepository) FindByVerificationToken(ctx context.Context, token string) (*user.User, error) {
	query := `SELECT` + userColumns + ` FROM users
		WHERE verification_token = $1
		  AND verification_sent_at > $2`

	cutoff := time.Now().Add(-user.VerificationTokenTTL)
	u, err := scanUser(r.pool.QueryRow(ctx, query, token, cutoff))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find user by verification token: %w", err)
	}

	return u, nil
}

func (r *postgresRepository) FindByResetToken(ctx context.Context, token string) (*user.User, error) {
	query := `SELECT` + userColumns + ` FROM users
		WHERE reset_token = $1
		  AND reset_token_expires_at > NOW()`

	u, err := scanUser(r.pool.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find user by reset token: %w", err)
	}

	return u, nil
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2,
			reset_token = NULL,
			reset_token_expires_at = NULL,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, userID)
	return nil
}

func (r *postgresRepository) MarkAsVerified(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE users
		SET is_verified = TRUE,
			verification_token = NULL,
			verification_sent_at = NULL,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user as verified: %w", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, userID)
	return nil
}

func (r *postgresRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	r.invalidate(ctx, userID)
	return nil
}

// ========================================
// ADMIN
// ========================================

func (r *postgresRepository) List(ctx context.Context, filter user.ListFilter, page, limit int) ([]user.User, int, error) {
	var clauses []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Role != nil {
		clauses = append(clauses, "role = "+arg(*filter.Role))
	}
	if filter.IsBlocked != nil {
		clauses = append(clauses, "is_blocked = "+arg(*filter.IsBlocked))
	}
	if filter.IsVerified != nil {
		clauses = append(clauses, "is_verified = "+arg(*filter.IsVerified))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + s + "%"
		clauses = append(clauses, "(email ILIKE "+arg(pattern)+" OR full_name ILIKE "+arg(pattern)+")")
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `SELECT` + userColumns + ` FROM users` + where +
		` ORDER BY created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg((page-1)*limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, total, nil
}

func (r *postgresRepository) UpdateRole(ctx context.Context, userID uuid.UUID, role user.Role) error {
	result, err := r.pool.Exec(ctx, `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`, userID, role)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, userID)
	return nil
}

func (r *postgresRepository) SetBlocked(ctx context.Context, userID uuid.UUID, blocked bool) error {
	result, err := r.pool.Exec(ctx, `UPDATE users SET is_blocked = $2, updated_at = NOW() WHERE id = $1`, userID, blocked)
	if err != nil {
		return fmt.Errorf("failed to update blocked flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, userID)
	return nil
}

func (r *postgresRepository) CountByRole(ctx context.Context, role user.Role) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}

// ========================================
// UTILITY
// ========================================

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, strings.ToLower(email)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) DeleteExpiredVerificationTokens(ctx context.Context, cutoff time.Time) (int, error) {
	query := `
		UPDATE users
		SET verification_token = NULL,
			verification_sent_at = NULL
		WHERE verification_token IS NOT NULL
		  AND verification_sent_at < $1
	`

	result, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired verification tokens: %w", err)
	}
	return int(result.RowsAffected()), nil
}

func (r *postgresRepository) DeleteExpiredResetTokens(ctx context.Context, cutoff time.Time) (int, error) {
	query := `
		UPDATE users
		SET reset_token = NULL,
			reset_token_expires_at = NULL
		WHERE reset_token IS NOT NULL
		  AND reset_token_expires_at < $1
	`

	result, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired reset tokens: %w", err)
	}
	return int(result.RowsAffected()), nil
}

func (r *postgresRepository) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := r.cache.Delete(ctx, userCacheKey(userID)); err != nil {
		logger.Error("user cache invalidation failed", err)
	}
}
