package media

import (
	"time"

	"github.com/google/uuid"
)

// Asset is one uploaded file attached to a post. The original and its
// thumbnail live in object storage under the post's key prefix, so deleting
// the post wipes everything in one prefix sweep.
type Asset struct {
	ID           uuid.UUID `json:"id"`
	PostID       uuid.UUID `json:"post_id"`
	UploaderID   uuid.UUID `json:"uploader_id"`
	Key          string    `json:"-"`
	ThumbnailKey string    `json:"-"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}
