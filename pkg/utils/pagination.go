package utils

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// ClampPagination normalizes a page/limit pair. Pages below 1 clamp to 1 and
// limits clamp to [1, MaxPageLimit]; a zero limit takes the default.
func ClampPagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// PageOffset converts a normalized page/limit pair into a row offset.
func PageOffset(page, limit int) int {
	return (page - 1) * limit
}
