// Package model defines the persisted entities: Venue, Artist and Show.
//
// Models carry bun struct tags so the same types drive queries, relations
// and (for non-PostgreSQL drivers) table creation.
package model

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

var (
	_ bun.BeforeAppendModelHook = (*Venue)(nil)
	_ bun.BeforeAppendModelHook = (*Artist)(nil)
	_ bun.BeforeAppendModelHook = (*Show)(nil)
)

// Times are written in UTC so string-typed columns (SQLite) compare in order.
func stampCreated(query bun.Query, createdAt *time.Time) {
	if _, ok := query.(*bun.InsertQuery); ok && createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}

func (v *Venue) BeforeAppendModel(_ context.Context, query bun.Query) error {
	stampCreated(query, &v.CreatedAt)
	return nil
}

func (a *Artist) BeforeAppendModel(_ context.Context, query bun.Query) error {
	stampCreated(query, &a.CreatedAt)
	return nil
}

func (s *Show) BeforeAppendModel(_ context.Context, query bun.Query) error {
	stampCreated(query, &s.CreatedAt)
	s.StartTime = s.StartTime.UTC()
	return nil
}
