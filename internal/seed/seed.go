// Package seed loads demo listings from a YAML fixture.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"time"

	"github.com/deppfellow/fyyur/internal/model"
	"github.com/deppfellow/fyyur/internal/repository"
	"github.com/uptrace/bun"
	"gopkg.in/yaml.v3"
)

// Default is the Fyyur demo data.
//
//go:embed fixtures/fyyur.yaml
var Default []byte

// Fixture is the document layout. Shows refer to venues and artists by name.
type Fixture struct {
	Venues  []Venue  `yaml:"venues"`
	Artists []Artist `yaml:"artists"`
	Shows   []Show   `yaml:"shows"`
}

type Venue struct {
	Name               string   `yaml:"name"`
	Genres             []string `yaml:"genres"`
	Address            string   `yaml:"address"`
	City               string   `yaml:"city"`
	State              string   `yaml:"state"`
	Phone              string   `yaml:"phone"`
	WebsiteLink        string   `yaml:"website_link"`
	FacebookLink       string   `yaml:"facebook_link"`
	ImageLink          string   `yaml:"image_link"`
	SeekingTalent      bool     `yaml:"seeking_talent"`
	SeekingDescription string   `yaml:"seeking_description"`
}

type Artist struct {
	Name               string   `yaml:"name"`
	Genres             []string `yaml:"genres"`
	City               string   `yaml:"city"`
	State              string   `yaml:"state"`
	Phone              string   `yaml:"phone"`
	WebsiteLink        string   `yaml:"website_link"`
	FacebookLink       string   `yaml:"facebook_link"`
	ImageLink          string   `yaml:"image_link"`
	SeekingVenue       bool     `yaml:"seeking_venue"`
	SeekingDescription string   `yaml:"seeking_description"`
}

type Show struct {
	Venue     string    `yaml:"venue"`
	Artist    string    `yaml:"artist"`
	StartTime time.Time `yaml:"start_time"`
}

// Result counts the rows inserted by Load.
type Result struct {
	Venues  int
	Artists int
	Shows   int
}

// Parse decodes a fixture document. Unknown keys are rejected.
func Parse(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding seed fixture: %w", err)
	}
	return &f, nil
}

// Load inserts the fixture in a single transaction.
func Load(ctx context.Context, db *bun.DB, repos *repository.Repositories, f *Fixture) (*Result, error) {
	res := &Result{}

	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		venueIDs := make(map[string]int64, len(f.Venues))
		for _, v := range f.Venues {
			venue := &model.Venue{
				Name:               v.Name,
				City:               v.City,
				State:              v.State,
				Address:            v.Address,
				Phone:              v.Phone,
				ImageLink:          v.ImageLink,
				FacebookLink:       v.FacebookLink,
				WebsiteLink:        v.WebsiteLink,
				Genres:             model.Genres(v.Genres),
				SeekingTalent:      v.SeekingTalent,
				SeekingDescription: v.SeekingDescription,
			}
			if err := repos.Venue.CreateWithTx(ctx, tx, venue); err != nil {
				return fmt.Errorf("inserting venue %q: %w", v.Name, err)
			}
			venueIDs[v.Name] = venue.ID
			res.Venues++
		}

		artistIDs := make(map[string]int64, len(f.Artists))
		for _, a := range f.Artists {
			artist := &model.Artist{
				Name:               a.Name,
				City:               a.City,
				State:              a.State,
				Phone:              a.Phone,
				ImageLink:          a.ImageLink,
				FacebookLink:       a.FacebookLink,
				WebsiteLink:        a.WebsiteLink,
				Genres:             model.Genres(a.Genres),
				SeekingVenue:       a.SeekingVenue,
				SeekingDescription: a.SeekingDescription,
			}
			if err := repos.Artist.CreateWithTx(ctx, tx, artist); err != nil {
				return fmt.Errorf("inserting artist %q: %w", a.Name, err)
			}
			artistIDs[a.Name] = artist.ID
			res.Artists++
		}

		for i, s := range f.Shows {
			venueID, ok := venueIDs[s.Venue]
			if !ok {
				return fmt.Errorf("show %d: unknown venue %q", i, s.Venue)
			}
			artistID, ok := artistIDs[s.Artist]
			if !ok {
				return fmt.Errorf("show %d: unknown artist %q", i, s.Artist)
			}

			show := &model.Show{VenueID: venueID, ArtistID: artistID, StartTime: s.StartTime}
			if err := repos.Show.CreateWithTx(ctx, tx, show); err != nil {
				return fmt.Errorf("inserting show %d: %w", i, err)
			}
			res.Shows++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
