package pagination

// PaginationMeta contains metadata about a paginated result.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewPaginationMeta builds metadata for the given page of totalItems.
func NewPaginationMeta(page, pageSize, totalItems int) PaginationMeta {
	totalPages := TotalPages(totalItems, pageSize)

	return PaginationMeta{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasPrevious: page > MinPage && totalPages > 0,
		HasNext:     page < totalPages,
	}
}
