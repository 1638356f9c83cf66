package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"legalblog-backend/internal/domains/blog"
)

// ExportService builds admin reports of posts as .xlsx workbooks.
type ExportService struct {
	repo blog.Repository
}

func NewExportService(repo blog.Repository) *ExportService {
	return &ExportService{repo: repo}
}

const exportSheet = "Posts"

// ExportPosts writes every post matching the filter (admin visibility, so
// all statuses) into a workbook and returns the encoded bytes.
func (s *ExportService) ExportPosts(ctx context.Context, admin blog.Viewer, filter blog.Filter) ([]byte, error) {
	if admin.Role != blog.RoleAdmin {
		return nil, blog.ErrForbidden
	}

	// Page through everything; exports are admin-only and infrequent.
	const pageSize = 500
	var all []*blog.Post
	for page := 1; ; page++ {
		posts, total, err := s.repo.List(ctx, admin, filter, page, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, posts...)
		if len(all) >= total || len(posts) == 0 {
			break
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), exportSheet)

	headers := []string{"ID", "Title", "Author ID", "Status", "Rejection Reason", "Category ID", "Tags", "Views", "Created", "Updated", "Published"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}

	for row, p := range all {
		values := []interface{}{
			p.ID.String(),
			p.Title,
			p.AuthorID.String(),
			string(p.Status),
			derefReason(p.RejectionReason),
			optionalUUIDString(p.CategoryID),
			strings.Join(p.Tags, ", "),
			p.ViewCount,
			p.CreatedAt.Format(time.RFC3339),
			p.UpdatedAt.Format(time.RFC3339),
			optionalTimeString(p.PublishedAt),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(exportSheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func optionalUUIDString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func optionalTimeString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
