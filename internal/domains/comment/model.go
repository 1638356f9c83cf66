package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reader comment on a published post. Comments are flat, no
// threading.
type Comment struct {
	ID       uuid.UUID `json:"id"`
	PostID   uuid.UUID `json:"post_id"`
	AuthorID uuid.UUID `json:"author_id"`

	Content string `json:"content"`

	// AuthorName is joined in on reads, not stored.
	AuthorName string `json:"author_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EditWindow is how long the author may still edit their comment.
const EditWindow = 15 * time.Minute

func NewComment(postID, authorID uuid.UUID, content string) *Comment {
	now := time.Now()
	return &Comment{
		ID:        uuid.New(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Comment) IsOwnedBy(accountID uuid.UUID) bool {
	return c.AuthorID == accountID
}

// CanBeEdited reports whether the edit window is still open.
func (c *Comment) CanBeEdited() bool {
	return time.Since(c.CreatedAt) < EditWindow
}
