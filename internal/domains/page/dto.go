package page

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type CreatePageRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Sections    Sections `json:"sections"`
	IsPublished bool     `json:"is_published"`
}

func (r CreatePageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Length(0, 255), validation.Match(slugPattern)),
		validation.Field(&r.Sections, validation.Required, validation.By(validateSections)),
	)
}

type UpdatePageRequest struct {
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	Sections    *Sections `json:"sections"`
	IsPublished *bool     `json:"is_published"`
}

func (r UpdatePageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.NilOrNotEmpty, validation.Match(slugPattern)),
		validation.Field(&r.Sections, validation.By(validateSectionsPtr)),
	)
}

func validateSections(value interface{}) error {
	sections, _ := value.(Sections)
	return checkSections(sections)
}

func validateSectionsPtr(value interface{}) error {
	sections, ok := value.(*Sections)
	if !ok || sections == nil {
		return nil
	}
	return checkSections(*sections)
}

func checkSections(sections Sections) error {
	if len(sections) > 50 {
		return validation.NewError("validation_sections_count", "a page cannot have more than 50 sections")
	}
	for _, s := range sections {
		if !s.Valid() {
			return validation.NewError("validation_section_invalid", "each section needs a valid type and a non-empty body")
		}
	}
	return nil
}
