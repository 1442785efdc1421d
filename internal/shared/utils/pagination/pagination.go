package pagination

// PageCount returns ceil(total / size). Zero items still make one page so
// the views always have something to render.
func PageCount(total, size int) int {
	if size <= 0 {
		return 1
	}
	count := (total + size - 1) / size
	if count < 1 {
		count = 1
	}
	return count
}

// Slice returns the items of a 1-based page
func Slice[T any](items []T, page, size int) []T {
	if size <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}

	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
