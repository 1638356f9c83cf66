package blog

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// REQUEST DTOs
// ========================================

type CreatePostRequest struct {
	Title         string   `json:"title" binding:"required"`
	Content       string   `json:"content" binding:"required"`
	CategoryID    *string  `json:"category_id,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	CoverImageURL string   `json:"cover_image_url,omitempty"`

	// Status is honored only for admins; everyone else starts in draft.
	Status string `json:"status,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(3, 255),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 200000),
		),
		validation.Field(&r.Tags,
			validation.Length(0, 10).Error("at most 10 tags"),
			validation.Each(validation.Length(1, 50)),
		),
		validation.Field(&r.Status,
			validation.In("", "draft", "pending", "published", "rejected").Error("invalid status value"),
		),
	)
}

type UpdatePostRequest struct {
	Title         string   `json:"title" binding:"required"`
	Content       string   `json:"content" binding:"required"`
	CategoryID    *string  `json:"category_id,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	CoverImageURL string   `json:"cover_image_url,omitempty"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(3, 255),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 200000),
		),
		validation.Field(&r.Tags,
			validation.Length(0, 10).Error("at most 10 tags"),
			validation.Each(validation.Length(1, 50)),
		),
	)
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason,omitempty"`
}

func (r TransitionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
			validation.In("draft", "pending", "published", "rejected").Error("invalid status value"),
		),
		validation.Field(&r.Reason, validation.Length(0, 1000)),
	)
}

// ListQuery is the query-string side of listing. Pagination is normalized
// by the service.
type ListQuery struct {
	Status        string `form:"status"`
	AuthorID      string `form:"author_id"`
	CategoryID    string `form:"category_id"`
	Search        string `form:"search"`
	DateOnOrAfter string `form:"from"` // RFC 3339 date
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
}

// ========================================
// RESPONSE DTOs
// ========================================

type PostDTO struct {
	ID              uuid.UUID  `json:"id"`
	AuthorID        uuid.UUID  `json:"author_id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	Tags            []string   `json:"tags"`
	CoverImageURL   string     `json:"cover_image_url,omitempty"`
	Status          Status     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ViewCount       int64      `json:"view_count"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
}

func ToDTO(p *Post) PostDTO {
	return PostDTO{
		ID:              p.ID,
		AuthorID:        p.AuthorID,
		Title:           p.Title,
		Slug:            p.Slug,
		Content:         p.Content,
		CategoryID:      p.CategoryID,
		Tags:            p.Tags,
		CoverImageURL:   p.CoverImageURL,
		Status:          p.Status,
		RejectionReason: p.RejectionReason,
		ViewCount:       p.ViewCount,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		PublishedAt:     p.PublishedAt,
	}
}

type ListResponse struct {
	Posts      []PostDTO `json:"posts"`
	TotalCount int       `json:"total_count"`
}
