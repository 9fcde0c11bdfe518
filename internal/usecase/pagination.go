package usecase

// PageSize is the number of entries shown per list page.
const PageSize = 5

// Page is one slice of a paginated list.
type Page[T any] struct {
	Items  []T
	Number int
	Total  int
	// Offset is the index of the first item in the full list.
	Offset int
}

// Empty reports whether the page holds no items.
func (p Page[T]) Empty() bool {
	return len(p.Items) == 0
}

// TotalPages returns ceil(n/size), never less than 1.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = PageSize
	}
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// ClampPage moves page into [1, total].
func ClampPage(page, total int) int {
	if total < 1 {
		total = 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Paginate returns the 1-based page of items. Pages outside [1, TotalPages] come back
// empty; callers clamp with ClampPage first when that matters.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = PageSize
	}
	p := Page[T]{Number: page, Total: TotalPages(len(items), size)}
	if page < 1 {
		return p
	}
	start := (page - 1) * size
	if start >= len(items) {
		p.Offset = start
		return p
	}
	end := min(start+size, len(items))
	p.Items = items[start:end]
	p.Offset = start
	return p
}
