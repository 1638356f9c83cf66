package blog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"legalblog-backend/internal/shared/utils"
)

// ============================================================
// STATUS
// ============================================================

// Status is the moderation state of a post. Posts move
// draft -> pending -> published/rejected; published and rejected are not
// terminal, edits route back into the graph.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPublished, StatusRejected:
		return true
	}
	return false
}

// ParseStatus validates a raw status value from a request.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ============================================================
// ENTITY: Post
// ============================================================

// Post is a blog post and its moderation metadata.
//
// Invariant: RejectionReason != nil if and only if Status == rejected.
type Post struct {
	ID       uuid.UUID `json:"id"`
	AuthorID uuid.UUID `json:"author_id"`

	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	CategoryID    *uuid.UUID `json:"category_id"`
	Tags          []string   `json:"tags"`
	CoverImageURL string     `json:"cover_image_url"`

	Status          Status  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`

	ViewCount int64 `json:"view_count"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// NewPost creates a post in draft. Admins may override the initial status
// through ApplyTransition afterwards; creation itself always starts clean.
func NewPost(authorID uuid.UUID, title, content string, categoryID *uuid.UUID, tags []string, coverImageURL string) *Post {
	now := time.Now()
	return &Post{
		ID:            uuid.New(),
		AuthorID:      authorID,
		Title:         strings.TrimSpace(title),
		Slug:          utils.GenerateSlug(title),
		Content:       content,
		CategoryID:    categoryID,
		Tags:          tags,
		CoverImageURL: coverImageURL,
		Status:        StatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsOwnedBy reports whether the account owns this post.
func (p *Post) IsOwnedBy(accountID uuid.UUID) bool {
	return p.AuthorID == accountID
}

// ============================================================
// ACTOR (resolved account, consulted not owned)
// ============================================================

type Role string

const (
	RoleReader Role = "reader"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

// Actor is the resolved identity performing an operation.
type Actor struct {
	ID        uuid.UUID
	Role      Role
	IsBlocked bool
}

// ============================================================
// TRANSITION FUNCTION
// ============================================================

// EffectiveStatus maps (role, ownership, requested status) to the status
// that will actually be stored. This is the single place the downgrade rule
// lives.
//
// Admins get the requested status as-is, but rejecting requires a non-empty
// reason. Owning authors get draft/pending as requested; publish and reject
// requests are silently downgraded to pending so authors can submit for
// review without an error path.
func EffectiveStatus(role Role, isOwner bool, requested Status, reason string) (Status, error) {
	if !requested.Valid() {
		return "", ErrInvalidStatus
	}

	if role == RoleAdmin {
		if requested == StatusRejected && strings.TrimSpace(reason) == "" {
			return "", ErrReasonRequired
		}
		return requested, nil
	}

	if !isOwner {
		return "", ErrForbidden
	}

	switch requested {
	case StatusDraft, StatusPending:
		return requested, nil
	default:
		// published and rejected are admin-only; soft-deny to pending.
		return StatusPending, nil
	}
}

// ApplyTransition mutates the post according to an already-computed
// effective status. Leaving rejected always clears the reason; entering
// rejected stores it. updatedAt is refreshed on every transition.
func (p *Post) ApplyTransition(effective Status, reason string) {
	now := time.Now()

	if effective == StatusRejected {
		trimmed := strings.TrimSpace(reason)
		p.RejectionReason = &trimmed
	} else {
		p.RejectionReason = nil
	}

	if effective == StatusPublished && p.PublishedAt == nil {
		p.PublishedAt = &now
	}

	p.Status = effective
	p.UpdatedAt = now
}

// ============================================================
// LISTING
// ============================================================

// Viewer identifies who is asking in a listing call. A zero Viewer is
// anonymous.
type Viewer struct {
	ID   uuid.UUID
	Role Role
}

// Filter is the caller-supplied part of a listing query. The visibility
// predicate is NOT here: it is derived from the Viewer and applied
// unconditionally by the repository before these filters.
type Filter struct {
	Status        *Status
	AuthorID      *uuid.UUID
	CategoryID    *uuid.UUID
	SearchText    string
	DateOnOrAfter *time.Time

	// MineOnly restricts the listing to the viewer's own posts, which for
	// authors widens visibility to all of their statuses.
	MineOnly bool
}
