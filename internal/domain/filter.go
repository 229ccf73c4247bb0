package domain

// Pagination defaults for every list query.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// ClampLimit applies the default and the cap to a requested page size.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// ClampOffset floors a requested offset at zero.
func ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
