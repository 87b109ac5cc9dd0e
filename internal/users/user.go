package users

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// JSON field names with dedicated struct fields.
const (
	fieldID   = "id"
	fieldName = "name"
)

// Decoding errors for malformed records.
var (
	ErrMissingID   = errors.New("user record is missing an integer id")
	ErrMissingName = errors.New("user record is missing a string name")
)

// User is a single directory entry.
//
// ID and Name are the only fields the pipeline reads. Every other field from the
// source payload is kept verbatim in Extra and written back out unchanged.
type User struct {
	ID    int                        `json:"id"`
	Name  string                     `json:"name"`
	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes a user object, requiring an integer id and a string name.
func (u *User) UnmarshalJSON(data []byte) error {
	if u == nil {
		return errors.New("cannot unmarshal into nil User")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decoding user object: %w", err)
	}
	if fields == nil {
		return ErrMissingID
	}

	rawID, ok := fields[fieldID]
	if !ok || isNull(rawID) {
		return ErrMissingID
	}
	var id int
	if err := json.Unmarshal(rawID, &id); err != nil {
		return fmt.Errorf("%w: %s", ErrMissingID, string(rawID))
	}

	rawName, ok := fields[fieldName]
	if !ok || isNull(rawName) {
		return fmt.Errorf("%w (id %d)", ErrMissingName, id)
	}
	var name string
	if err := json.Unmarshal(rawName, &name); err != nil {
		return fmt.Errorf("%w (id %d): %s", ErrMissingName, id, string(rawName))
	}

	delete(fields, fieldID)
	delete(fields, fieldName)
	if len(fields) == 0 {
		fields = nil
	}

	u.ID = id
	u.Name = name
	u.Extra = fields
	return nil
}

// MarshalJSON re-emits the record including every pass-through field.
func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(u.Extra)+2) //nolint:mnd // id and name.
	for k, v := range u.Extra {
		out[k] = v
	}

	id, err := json.Marshal(u.ID)
	if err != nil {
		return nil, err
	}
	name, err := json.Marshal(u.Name)
	if err != nil {
		return nil, err
	}
	out[fieldID] = id
	out[fieldName] = name

	return json.Marshal(out)
}

// Field returns a pass-through field decoded into a string, if it holds one.
func (u User) Field(key string) (string, bool) {
	raw, ok := u.Extra[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
