package users

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is the collation locale used when none is configured.
//
//nolint:gochecknoglobals // language.Tag values are not constants.
var DefaultLocale = language.English

// Pipeline filters and orders user records for one collation locale.
//
// A Pipeline is safe for concurrent use: collators and casers are stateful, so
// each call builds its own.
type Pipeline struct {
	locale language.Tag
}

// NewPipeline returns a pipeline that orders names according to locale.
func NewPipeline(locale language.Tag) *Pipeline {
	return &Pipeline{locale: locale}
}

// DefaultPipeline returns a pipeline using DefaultLocale.
func DefaultPipeline() *Pipeline {
	return NewPipeline(DefaultLocale)
}

// Locale returns the collation locale.
func (p *Pipeline) Locale() language.Tag {
	return p.locale
}

// Transform filters records by searchTerm and sorts the survivors by name.
// The input slice is never modified; the result is always non-nil.
func (p *Pipeline) Transform(records []User, searchTerm string, order SortOrder) []User {
	return p.sortInPlace(Filter(records, searchTerm), order)
}

// Sort returns a copy of records ordered by name.
// The sort is stable: records whose names collate equal keep their input order.
func (p *Pipeline) Sort(records []User, order SortOrder) []User {
	return p.sortInPlace(slices.Clone(records), order)
}

func (p *Pipeline) sortInPlace(records []User, order SortOrder) []User {
	if records == nil {
		return []User{}
	}

	col := collate.New(p.locale)
	slices.SortStableFunc(records, func(a, b User) int {
		c := col.CompareString(a.Name, b.Name)
		if order == Descending {
			return -c
		}
		return c
	})
	return records
}

// Transform runs the default pipeline.
func Transform(records []User, searchTerm string, order SortOrder) []User {
	return DefaultPipeline().Transform(records, searchTerm, order)
}

// Sort runs the default pipeline's sort step.
func Sort(records []User, order SortOrder) []User {
	return DefaultPipeline().Sort(records, order)
}

// Filter returns the records whose name contains searchTerm after case folding.
// An empty search term keeps every record. The result is a new slice.
func Filter(records []User, searchTerm string) []User {
	filtered := make([]User, 0, len(records))
	if searchTerm == "" {
		return append(filtered, records...)
	}

	folder := cases.Fold()
	needle := folder.String(searchTerm)
	for _, r := range records {
		if strings.Contains(folder.String(r.Name), needle) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
