package comment

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 5000).Error("content must be 1-5000 characters"),
		),
	)
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r UpdateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 5000).Error("content must be 1-5000 characters"),
		),
	)
}

type ListResponse struct {
	Comments   []*Comment `json:"comments"`
	TotalCount int        `json:"total_count"`
}
