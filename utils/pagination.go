package utils

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GetPaginationParams resolves optional offset/limit query values into
// concrete ones. Negative offsets and non-positive limits fall back to the
// defaults; the limit is clamped so a single request cannot page the whole
// table.
func GetPaginationParams(offset *int, limit *int) (int, int) {
	resolvedOffset := 0
	if offset != nil && *offset >= 0 {
		resolvedOffset = *offset
	}

	resolvedLimit := defaultPageSize
	if limit != nil && *limit > 0 {
		resolvedLimit = min(*limit, maxPageSize)
	}

	return resolvedOffset, resolvedLimit
}
