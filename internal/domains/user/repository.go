package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows admin user listings.
type ListFilter struct {
	Role       *Role
	IsBlocked  *bool
	IsVerified *bool
	Search     string // matches email and full name
}

// Repository is the persistence boundary for accounts.
type Repository interface {
	// Create returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, u *User) error

	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	Update(ctx context.Context, u *User) error

	// FindByVerificationToken only returns users whose token is still
	// within its window.
	FindByVerificationToken(ctx context.Context, token string) (*User, error)

	// FindByResetToken only returns users whose reset token has not
	// expired.
	FindByResetToken(ctx context.Context, token string) (*User, error)

	// UpdatePassword stores the hash and clears any pending reset token.
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	// MarkAsVerified flips is_verified and clears the verification token.
	MarkAsVerified(ctx context.Context, userID uuid.UUID) error

	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error

	List(ctx context.Context, filter ListFilter, page, limit int) ([]User, int, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, role Role) error
	SetBlocked(ctx context.Context, userID uuid.UUID, blocked bool) error
	CountByRole(ctx context.Context, role Role) (int, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Token cleanup, driven by the scheduled worker job. Both return the
	// number of rows cleared.
	DeleteExpiredVerificationTokens(ctx context.Context, cutoff time.Time) (int, error)
	DeleteExpiredResetTokens(ctx context.Context, cutoff time.Time) (int, error)
}

// Mailer queues account emails. Implemented by the notification domain on
// top of the task queue; failures are logged by the service, never
// propagated to the caller.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, fullName, token string) error
	SendResetPasswordEmail(ctx context.Context, email, fullName, token string) error
}
