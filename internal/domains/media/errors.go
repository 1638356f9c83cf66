package media

import "errors"

var (
	ErrAssetNotFound  = errors.New("media asset not found")
	ErrPostNotFound   = errors.New("post not found")
	ErrForbidden      = errors.New("you cannot manage media for this post")
	ErrAccountBlocked = errors.New("account is blocked")
	ErrInvalidImage   = errors.New("file is not a valid image")
)
