package page

import "errors"

var (
	ErrPageNotFound  = errors.New("page not found")
	ErrDuplicateSlug = errors.New("a page with this slug already exists")
)
