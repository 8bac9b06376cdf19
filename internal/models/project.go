package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Project represents a portfolio project as authored in projects.json.
// Every field is optional; loosely typed values are coerced rather than rejected.
type Project struct {
	Name    Text     `json:"name"`
	Summary Optional `json:"summary,omitempty"`
	Tagline Optional `json:"tagline,omitempty"`
	Website Optional `json:"website,omitempty"`
	Repo    Optional `json:"repo,omitempty"`
	Slug    Text     `json:"slug"`
	Pin     Flag     `json:"pin,omitempty"`
	Status  Optional `json:"status,omitempty"`
	Details Optional `json:"details,omitempty"` // markdown body for the detail page
}

// Description returns the summary, falling back to the tagline
func (p Project) Description() string {
	if p.Summary != "" {
		return string(p.Summary)
	}
	return string(p.Tagline)
}

// Pinned reports whether the project is prioritised in display order
func (p Project) Pinned() bool {
	return bool(p.Pin)
}

// DecodeProjects parses a JSON array of project records
func DecodeProjects(r io.Reader) ([]Project, error) {
	var projects []Project
	if err := json.NewDecoder(r).Decode(&projects); err != nil {
		return nil, fmt.Errorf("failed to parse projects: %w", err)
	}
	return projects, nil
}

// Text is a display string that accepts any JSON scalar.
// Numbers and booleans keep their literal spelling; null, arrays and objects become "".
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*t = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case 't', 'f', '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*t = Text(data)
	default:
		*t = ""
	}
	return nil
}

// Optional is a Text that is only present when its JSON value is truthy.
// false, 0, "" and null decode to "" so presence checks can compare against "".
type Optional string

// UnmarshalJSON implements json.Unmarshaler
func (o *Optional) UnmarshalJSON(data []byte) error {
	var present Flag
	if err := present.UnmarshalJSON(data); err != nil {
		return err
	}
	if !present {
		*o = ""
		return nil
	}

	var t Text
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	*o = Optional(t)
	return nil
}

// Flag is a boolean decoded with loose truthiness: true, non-zero numbers,
// non-empty strings, arrays and objects are set; everything else is not.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*f = false
		return nil
	}

	switch data[0] {
	case 't':
		*f = true
	case 'f', 'n':
		*f = false
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = s != ""
	case '[', '{':
		*f = true
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid flag value %s: %w", data, err)
		}
		*f = n != 0
	}
	return nil
}
