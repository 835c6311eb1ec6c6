package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Genres is a list of genre names stored as one comma-joined text column.
type Genres []string

// Value implements driver.Valuer.
func (g Genres) Value() (driver.Value, error) {
	return g.String(), nil
}

// Scan implements sql.Scanner.
func (g *Genres) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*g = Genres{}
		return nil
	case string:
		*g = ParseGenres(v)
		return nil
	case []byte:
		*g = ParseGenres(string(v))
		return nil
	default:
		return fmt.Errorf("genres: unsupported scan type %T", value)
	}
}

func (g Genres) String() string {
	return strings.Join(g, ",")
}

// ParseGenres splits a comma-joined column value, dropping blank entries.
func ParseGenres(s string) Genres {
	out := Genres{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
