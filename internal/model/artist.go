package model

import (
	"time"

	"github.com/uptrace/bun"
)

type Artist struct {
	bun.BaseModel `bun:"table:artists,alias:a"`

	ID                 int64     `bun:"id,pk,autoincrement" json:"id"`
	Name               string    `bun:"name,notnull" json:"name"`
	City               string    `bun:"city,notnull" json:"city"`
	State              string    `bun:"state,notnull" json:"state"`
	Phone              string    `bun:"phone" json:"phone"`
	ImageLink          string    `bun:"image_link" json:"image_link"`
	FacebookLink       string    `bun:"facebook_link" json:"facebook_link"`
	WebsiteLink        string    `bun:"website_link" json:"website_link"`
	Genres             Genres    `bun:"genres,type:text" json:"genres"`
	SeekingVenue       bool      `bun:"seeking_venue,notnull,default:false" json:"seeking_venue"`
	SeekingDescription string    `bun:"seeking_description" json:"seeking_description"`
	CreatedAt          time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
