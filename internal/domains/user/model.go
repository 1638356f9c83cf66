package user

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ============================================================
// ROLE
// ============================================================

// Role controls what an account may do. Readers comment, authors write
// posts, admins moderate and manage everything.
type Role string

const (
	RoleReader Role = "reader"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleReader, RoleAuthor, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole validates a raw role value from a request.
func ParseRole(raw string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// ============================================================
// SOCIAL LINKS (jsonb value object)
// ============================================================

// SocialLinks is stored as a single jsonb column on users.
type SocialLinks struct {
	Twitter  string `json:"twitter,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

func (l SocialLinks) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *SocialLinks) Scan(src interface{}) error {
	if src == nil {
		*l = SocialLinks{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("cannot scan %T into SocialLinks", src)
}

// ============================================================
// ENTITY: User
// ============================================================

type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`

	PasswordHash string `json:"-"`

	FullName    string      `json:"full_name"`
	Bio         string      `json:"bio,omitempty"`
	AvatarURL   string      `json:"avatar_url,omitempty"`
	SocialLinks SocialLinks `json:"social_links"`

	Role      Role `json:"role"`
	IsBlocked bool `json:"is_blocked"`

	IsVerified         bool       `json:"is_verified"`
	VerificationToken  *string    `json:"-"`
	VerificationSentAt *time.Time `json:"-"`

	ResetToken          *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Verification tokens are honored for 24 hours, reset tokens for 1 hour.
const (
	VerificationTokenTTL = 24 * time.Hour
	ResetTokenTTL        = time.Hour
)

// IsVerificationValid reports whether the pending verification token is
// still within its window.
func (u *User) IsVerificationValid() bool {
	if u.VerificationToken == nil || u.VerificationSentAt == nil {
		return false
	}
	return time.Now().Before(u.VerificationSentAt.Add(VerificationTokenTTL))
}

// IsResetValid reports whether the pending password reset token is still
// within its window.
func (u *User) IsResetValid() bool {
	if u.ResetToken == nil || u.ResetTokenExpiresAt == nil {
		return false
	}
	return time.Now().Before(*u.ResetTokenExpiresAt)
}

// CanAuthor reports whether the account may create and manage posts.
func (u *User) CanAuthor() bool {
	return u.Role == RoleAuthor || u.Role == RoleAdmin
}
