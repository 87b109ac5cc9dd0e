package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Page sizes, page numbers and sort keys accepted by the list command.
const (
	DefaultPageSize  = 5
	MinPageSize      = 1
	MaxPageSize      = 100
	DefaultPage      = 1
	MinPage          = 1
	SortFieldName    = "name"
	DefaultSortField = SortFieldName
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidPageSize   = fmt.Errorf("page-size must be between %d and %d", MinPageSize, MaxPageSize)
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// PaginationParams holds the list command's paging, search and sort flags.
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of users per page.
	PageSize int

	// Search is the case-insensitive name substring; empty disables filtering.
	Search string

	// Sort is the raw sort expression ("name", "name:asc", "name:desc").
	Sort string

	// All prints every page instead of a single one.
	All bool
}

// NewPaginationParams creates a PaginationParams with default values.
func NewPaginationParams() *PaginationParams {
	return &PaginationParams{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Sort:     DefaultSortField + ":" + DefaultSortOrder,
	}
}

// Validate checks the parameters (value receiver).
func (p PaginationParams) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	if _, _, err := ParseSort(p.Sort); err != nil {
		return err
	}
	return nil
}

// SortOrder returns the validated order from the Sort expression.
func (p PaginationParams) SortOrder() (string, error) {
	_, order, err := ParseSort(p.Sort)
	return order, err
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "name", "name:desc". Only the name field is sortable.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if field != SortFieldName {
		return "", "", fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, SortFieldName)
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}
