// Package listview provides a selectable row list for Bubble Tea models.
//
// The list holds one page of items at a time. The owning model replaces the
// items whenever its derived view changes; the selection is kept in range.
package listview
