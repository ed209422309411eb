package postgres

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// textArray adapts a []string to the Postgres text[] wire literal for use
// through database/sql, which has no native array support.
type textArray []string

var (
	_ driver.Valuer = textArray(nil)
	_ interface {
		Scan(any) error
	} = (*textArray)(nil)
)

// Value renders the {"a","b"} array literal, quoting every element.
func (a textArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "{}", nil
	}
	esc := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	var b strings.Builder
	b.WriteByte('{')
	for i, s := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(esc.Replace(s))
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String(), nil
}

// Scan parses a text[] literal coming back from the driver.
func (a *textArray) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case string:
		return a.parse(v)
	case []byte:
		return a.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into textArray", src)
	}
}

func (a *textArray) parse(s string) error {
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return fmt.Errorf("malformed array literal %q", s)
	}
	body := s[1 : len(s)-1]
	if body == "" {
		*a = []string{}
		return nil
	}

	var (
		out      []string
		cur      strings.Builder
		inQuotes bool
		escaped  bool
	)
	flush := func() {
		v := cur.String()
		// An unquoted NULL element has no meaning for our columns.
		if v == "NULL" {
			v = ""
		}
		out = append(out, v)
		cur.Reset()
	}
	for _, r := range body {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && inQuotes:
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()

	*a = out
	return nil
}
