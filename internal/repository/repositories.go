package repository

import (
	"github.com/deppfellow/fyyur/internal/server"
)

// Repositories groups every repository so services receive one dependency.
type Repositories struct {
	Venue  *VenueRepository
	Artist *ArtistRepository
	Show   *ShowRepository
}

// NewRepositories builds the repositories over the server's bun handle.
func NewRepositories(s *server.Server) *Repositories {
	db := s.DB.DB
	return &Repositories{
		Venue:  NewVenueRepository(db),
		Artist: NewArtistRepository(db),
		Show:   NewShowRepository(db),
	}
}
