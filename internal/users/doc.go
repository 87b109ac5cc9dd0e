// Package users defines the user record returned by the directory endpoint and the
// pure transform pipeline applied to it before display.
//
// The pipeline has two steps:
//   - Filter: keep records whose name contains the search term, compared after Unicode
//     case folding (so "BO", "bo" and "Bo" all match "Bob").
//   - Sort: order records by name with a locale-aware collator, ascending or descending.
//
// Neither step mutates its input. Records are treated as immutable values once decoded.
package users
