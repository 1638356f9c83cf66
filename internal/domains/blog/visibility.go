package blog

import (
	"strings"

	"github.com/google/uuid"
)

// VisibleTo is the visibility predicate: which statuses a viewer may
// observe for a given post. Anonymous and readers only ever see published;
// authors additionally see their own posts in any status; admins see
// everything.
func (p *Post) VisibleTo(viewer Viewer) bool {
	if viewer.Role == RoleAdmin {
		return true
	}
	if viewer.Role == RoleAuthor && viewer.ID != uuid.Nil && p.IsOwnedBy(viewer.ID) {
		return true
	}
	return p.Status == StatusPublished
}

// MatchesFilter combines the visibility predicate with the caller-supplied
// filter, visibility first. The postgres repository builds the equivalent
// SQL; the in-memory repository used in tests applies this directly, so
// the rule lives in exactly one place.
func MatchesFilter(p *Post, viewer Viewer, f Filter) bool {
	if !p.VisibleTo(viewer) {
		return false
	}

	if f.MineOnly && !p.IsOwnedBy(viewer.ID) {
		return false
	}
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	if f.AuthorID != nil && p.AuthorID != *f.AuthorID {
		return false
	}
	if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
		return false
	}
	if s := strings.TrimSpace(f.SearchText); s != "" {
		needle := strings.ToLower(s)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Content), needle) {
			return false
		}
	}
	if f.DateOnOrAfter != nil && p.CreatedAt.Before(*f.DateOnOrAfter) {
		return false
	}

	return true
}
