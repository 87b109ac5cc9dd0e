package pagination

// Paginate returns the items on the given 1-based page and the total page count.
//
// totalPages is ceil(len(items)/pageSize), or 0 for an empty list. A page below 1
// or above totalPages yields an empty window. The window shares the backing array
// of items but is capacity-clipped so appending to it cannot overwrite items.
func Paginate[T any](items []T, pageSize, page int) ([]T, int) {
	totalPages := TotalPages(len(items), pageSize)
	if page < MinPage || page > totalPages {
		return []T{}, totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end:end], totalPages
}

// TotalPages returns the number of pages needed for totalItems at pageSize per page.
// Returns 0 when there are no items or pageSize is not positive.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// ClampPage bounds page to [1, totalPages]. With no pages it returns 1.
func ClampPage(page, totalPages int) int {
	switch {
	case totalPages <= 0, page < MinPage:
		return MinPage
	case page > totalPages:
		return totalPages
	default:
		return page
	}
}

// PageNumbers returns the page buttons 1..totalPages.
func PageNumbers(totalPages int) []int {
	if totalPages <= 0 {
		return []int{}
	}
	pages := make([]int, totalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// PageBounds returns the 1-based index of the first and last item on page.
// Both are 0 when the page is empty.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func PageBounds(totalItems, pageSize, page int) (first, last int) {
	totalPages := TotalPages(totalItems, pageSize)
	if page < MinPage || page > totalPages {
		return 0, 0
	}
	first = (page-1)*pageSize + 1
	last = page * pageSize
	if last > totalItems {
		last = totalItems
	}
	return first, last
}
