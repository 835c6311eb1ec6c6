package service

import (
	"github.com/deppfellow/fyyur/internal/lib/job"
	"github.com/deppfellow/fyyur/internal/repository"
	"github.com/deppfellow/fyyur/internal/server"
)

type Services struct {
	Auth   *AuthService
	Job    *job.JobService
	Venue  *VenueService
	Artist *ArtistService
	Show   *ShowService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	// A nil *JobService must not become a non-nil Enqueuer.
	var jobs job.Enqueuer
	if s.Job != nil {
		jobs = s.Job
	}

	return &Services{
		Auth:   NewAuthService(s),
		Job:    s.Job,
		Venue:  NewVenueService(s, repos, jobs),
		Artist: NewArtistService(s, repos, jobs),
		Show:   NewShowService(s, repos, jobs),
	}, nil
}

// SetClock replaces the time source used to split past and upcoming shows.
func (s *Services) SetClock(now Clock) {
	s.Venue.now = now
	s.Artist.now = now
}
