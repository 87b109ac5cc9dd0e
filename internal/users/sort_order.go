package users

import (
	"errors"
	"fmt"
	"strings"
)

// SortOrder is the direction in which records are ordered by name.
type SortOrder int

const (
	// Ascending orders names A→Z. It is the zero value.
	Ascending SortOrder = iota
	// Descending orders names Z→A.
	Descending
)

// ErrInvalidSortOrder is returned when a sort order string is not "asc" or "desc".
var ErrInvalidSortOrder = errors.New("sort order must be 'asc' or 'desc'")

// ParseSortOrder accepts "asc"/"ascending" and "desc"/"descending", case-insensitively.
// An empty string yields Ascending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("%w: got %q", ErrInvalidSortOrder, s)
	}
}

// String returns "asc" or "desc".
func (o SortOrder) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// Label returns a short human-readable label for status bars.
func (o SortOrder) Label() string {
	if o == Descending {
		return "Z→A"
	}
	return "A→Z"
}

// Toggle returns the opposite order.
func (o SortOrder) Toggle() SortOrder {
	if o == Descending {
		return Ascending
	}
	return Descending
}

// MarshalText implements encoding.TextMarshaler.
func (o SortOrder) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *SortOrder) UnmarshalText(text []byte) error {
	parsed, err := ParseSortOrder(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
