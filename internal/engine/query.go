package engine

import (
	"github.com/rshade/userdir/internal/pagination"
	"github.com/rshade/userdir/internal/users"
)

// Query is the parameter bundle that drives the derived view.
type Query struct {
	// SearchTerm filters users by name; empty means no filtering.
	SearchTerm string `json:"search"`

	// SortOrder orders users by name.
	SortOrder users.SortOrder `json:"sort_order"`

	// CurrentPage is the 1-based page being viewed.
	CurrentPage int `json:"page"`

	// PageSize is the number of users per page.
	PageSize int `json:"page_size"`
}

// DefaultQuery returns an unfiltered, ascending query on page 1.
func DefaultQuery() Query {
	return Query{
		SortOrder:   users.Ascending,
		CurrentPage: pagination.DefaultPage,
		PageSize:    pagination.DefaultPageSize,
	}
}

// WithSearch returns q with a new search term. A changed term resets the page to 1.
func (q Query) WithSearch(term string) Query {
	if term == q.SearchTerm {
		return q
	}
	q.SearchTerm = term
	q.CurrentPage = pagination.DefaultPage
	return q
}

// WithSortOrder returns q with a new sort order. A changed order resets the page to 1.
func (q Query) WithSortOrder(order users.SortOrder) Query {
	if order == q.SortOrder {
		return q
	}
	q.SortOrder = order
	q.CurrentPage = pagination.DefaultPage
	return q
}

// WithPage returns q on the given page. The page is not validated here.
func (q Query) WithPage(page int) Query {
	q.CurrentPage = page
	return q
}
