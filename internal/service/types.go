package service

import (
	"time"

	"github.com/deppfellow/fyyur/internal/model"
)

// ListingSummary is one venue or artist row in an area or search listing.
type ListingSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// Area groups the venues sharing a (city, state) pair.
type Area struct {
	City   string           `json:"city"`
	State  string           `json:"state"`
	Venues []ListingSummary `json:"venues"`
}

type SearchResult struct {
	Count int              `json:"count"`
	Data  []ListingSummary `json:"data"`
}

// ArtistShow is a show seen from a venue page.
type ArtistShow struct {
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// VenueShow is a show seen from an artist page.
type VenueShow struct {
	VenueID        int64     `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

type VenueDetail struct {
	*model.Venue
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

type ArtistDetail struct {
	*model.Artist
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// ShowListing is one row of the shows page.
type ShowListing struct {
	ID              int64     `json:"id"`
	VenueID         int64     `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

func summarize(id int64, name string, counts map[int64]int) ListingSummary {
	return ListingSummary{ID: id, Name: name, NumUpcomingShows: counts[id]}
}
