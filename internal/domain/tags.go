package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
)

// Tags is the ordered label list of a project.
//
// Postgres stores it as text[], SQLite as a JSON array in a TEXT column.
type Tags []string

// Scan implements sql.Scanner.
func (t *Tags) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("scan tags: unsupported type %T", src)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		*t = Tags{}
		return nil
	}

	var out []string
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &out); err != nil {
			return fmt.Errorf("scan tags json: %w", err)
		}
	} else {
		m := pgtype.NewMap()
		if err := m.SQLScanner(&out).Scan(raw); err != nil {
			return fmt.Errorf("scan tags array: %w", err)
		}
	}

	if out == nil {
		out = []string{}
	}
	*t = out
	return nil
}

// Value implements driver.Valuer for the SQLite TEXT column. Postgres
// writers pass []string(t) so pgx encodes a text[].
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

// MarshalJSON keeps an empty list as [] instead of null.
func (t Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}
