package comment

import "errors"

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrPostNotFound     = errors.New("post not found or not published")
	ErrForbidden        = errors.New("you cannot modify this comment")
	ErrAccountBlocked   = errors.New("account is blocked")
	ErrEditWindowClosed = errors.New("the edit window has closed")
)
