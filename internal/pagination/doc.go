// Package pagination slices ordered result lists into fixed-size pages and describes
// the result for callers.
//
// This package contains the page logic shared by the interactive browser and the
// list command:
//   - Paginate: 1-based page slicing with a total page count
//   - PaginationParams: flag values and validation for the list command
//   - PaginationMeta: metadata attached to structured output
//
// Out-of-range pages are not errors: they produce an empty window.
package pagination
