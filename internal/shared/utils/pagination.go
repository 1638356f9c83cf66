package utils

// NormalizePagination clamps page/limit to sane bounds.
// Defaults: page 1, limit 10. Limit is capped at 100.
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// TotalPages computes the page count for a total row count. The count is
// taken over the full filtered set before LIMIT/OFFSET, so the number here
// always agrees with the rows actually returned.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Offset converts (page, limit) to a SQL offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}
