package engine

import (
	"github.com/rshade/userdir/internal/pagination"
	"github.com/rshade/userdir/internal/users"
)

// View is the derived, paginated result of applying a Query to a snapshot.
type View struct {
	// Query is the query the view was derived from.
	Query Query `json:"query"`

	// Users holds the records visible on the current page.
	Users []users.User `json:"users"`

	// Matches holds every record that passed the filter, in sort order.
	Matches []users.User `json:"-"`

	// TotalPages is ceil(TotalMatches / PageSize), 0 when nothing matched.
	TotalPages int `json:"total_pages"`

	// TotalMatches is the number of records that passed the filter.
	TotalMatches int `json:"total_matches"`

	// TotalRecords is the size of the unfiltered snapshot.
	TotalRecords int `json:"total_records"`
}

// Derive filters, sorts and paginates snapshot according to q.
// It is a pure function: the snapshot is not modified.
func Derive(pipeline *users.Pipeline, snapshot []users.User, q Query) View {
	if pipeline == nil {
		pipeline = users.DefaultPipeline()
	}

	matches := pipeline.Transform(snapshot, q.SearchTerm, q.SortOrder)
	visible, totalPages := pagination.Paginate(matches, q.PageSize, q.CurrentPage)

	return View{
		Query:        q,
		Users:        visible,
		Matches:      matches,
		TotalPages:   totalPages,
		TotalMatches: len(matches),
		TotalRecords: len(snapshot),
	}
}

// Page returns the current page number.
func (v View) Page() int {
	return v.Query.CurrentPage
}

// PageNumbers returns the page buttons 1..TotalPages.
func (v View) PageNumbers() []int {
	return pagination.PageNumbers(v.TotalPages)
}

// Meta returns pagination metadata for structured output.
func (v View) Meta() pagination.PaginationMeta {
	return pagination.NewPaginationMeta(v.Query.CurrentPage, v.Query.PageSize, v.TotalMatches)
}

// IsEmpty reports whether no record is visible.
func (v View) IsEmpty() bool {
	return len(v.Users) == 0
}

// Bounds returns the 1-based positions of the first and last visible record
// within the matches, or zeros when the page is empty.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (v View) Bounds() (first, last int) {
	return pagination.PageBounds(v.TotalMatches, v.Query.PageSize, v.Query.CurrentPage)
}
