package page

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"legalblog-backend/internal/shared/utils"
)

// Section is one content block of a static page. Pages are stored as an
// ordered list of sections so the frontend can render headings, prose and
// HTML blocks without parsing markup server-side.
type Section struct {
	Type    string `json:"type"`
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body"`
}

const (
	SectionTypeText = "text"
	SectionTypeHTML = "html"
)

func (s Section) Valid() bool {
	return (s.Type == SectionTypeText || s.Type == SectionTypeHTML) && s.Body != ""
}

// Sections is stored as a jsonb column.
type Sections []Section

func (s Sections) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal page sections: %w", err)
	}
	return string(data), nil
}

func (s *Sections) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for page sections: %T", src)
	}

	return json.Unmarshal(data, s)
}

// Page is a standalone static page (about, contact, legal notices). Pages
// live outside the post moderation workflow and are admin-managed.
type Page struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Sections    Sections  `json:"sections"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewPage(title, slug string, sections Sections, published bool) *Page {
	if slug == "" {
		slug = utils.GenerateSlug(title)
	}

	now := time.Now()
	return &Page{
		ID:          uuid.New(),
		Slug:        slug,
		Title:       title,
		Sections:    sections,
		IsPublished: published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// VisibleTo reports whether the page can be served to a non-admin viewer.
func (p *Page) VisibleTo(isAdmin bool) bool {
	return p.IsPublished || isAdmin
}
