package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Show links an Artist to a Venue at a point in time.
type Show struct {
	bun.BaseModel `bun:"table:shows,alias:s"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	VenueID   int64     `bun:"venue_id,notnull" json:"venue_id"`
	ArtistID  int64     `bun:"artist_id,notnull" json:"artist_id"`
	StartTime time.Time `bun:"start_time,notnull" json:"start_time"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`

	Venue  *Venue  `bun:"rel:belongs-to,join:venue_id=id" json:"venue,omitempty"`
	Artist *Artist `bun:"rel:belongs-to,join:artist_id=id" json:"artist,omitempty"`
}

// IsUpcoming reports whether the show starts at or after now.
func (s *Show) IsUpcoming(now time.Time) bool {
	return !s.StartTime.Before(now)
}
