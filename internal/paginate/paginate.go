// Package paginate computes the bounded page-number window shared by every
// listing view (search results, episode listings, and anything else paged by
// the backend).
package paginate

// WindowSize is the maximum number of page buttons shown at once.
const WindowSize = 5

// VisiblePages returns the page numbers to display for the given current
// page and total page count, centered on current and clamped to [1, total].
// Candidates that fall outside the valid range are discarded rather than
// shifted, so windows near a boundary may be shorter than WindowSize.
func VisiblePages(current, total int) []int {
	if total <= 0 {
		return nil
	}
	current = Clamp(current, total)

	if total <= WindowSize {
		pages := make([]int, 0, total)
		for p := 1; p <= total; p++ {
			pages = append(pages, p)
		}
		return pages
	}

	var start int
	switch {
	case current < 3:
		start = 1
	case current > total-2:
		start = total - WindowSize + 1
	default:
		start = current - 2
	}

	pages := make([]int, 0, WindowSize)
	for i := 0; i < WindowSize; i++ {
		p := start + i
		if p < 1 || p > total {
			continue
		}
		pages = append(pages, p)
	}
	return pages
}

// Clamp constrains page to [1, total]. A total of zero clamps to 1 so a
// stale current page on an emptied listing stays renderable.
func Clamp(page, total int) int {
	if page < 1 {
		return 1
	}
	if total > 0 && page > total {
		return total
	}
	return page
}

// HasPrev reports whether a "previous page" action is available.
func HasPrev(current int) bool {
	return current > 1
}

// HasNext reports whether a "next page" action is available.
func HasNext(current, total int) bool {
	return current < total
}
