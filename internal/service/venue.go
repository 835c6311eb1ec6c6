package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/deppfellow/fyyur/internal/errs"
	"github.com/deppfellow/fyyur/internal/lib/job"
	"github.com/deppfellow/fyyur/internal/model"
	"github.com/deppfellow/fyyur/internal/repository"
	"github.com/deppfellow/fyyur/internal/server"
	"github.com/uptrace/bun"
)

type VenueService struct {
	server *server.Server
	repos  *repository.Repositories
	jobs   job.Enqueuer
	now    Clock
}

func NewVenueService(s *server.Server, repos *repository.Repositories, jobs job.Enqueuer) *VenueService {
	return &VenueService{
		server: s,
		repos:  repos,
		jobs:   jobs,
		now:    systemClock,
	}
}

// ListAreas groups every venue by (city, state).
func (v *VenueService) ListAreas(ctx context.Context) ([]Area, error) {
	venues, err := v.repos.Venue.ListByArea(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := v.repos.Venue.UpcomingShowCounts(ctx, v.now())
	if err != nil {
		return nil, err
	}

	// Rows arrive ordered by state then city, so an area is a run of
	// consecutive rows.
	areas := make([]Area, 0)
	for _, venue := range venues {
		last := len(areas) - 1
		if last < 0 || areas[last].City != venue.City || areas[last].State != venue.State {
			areas = append(areas, Area{City: venue.City, State: venue.State})
			last++
		}
		areas[last].Venues = append(areas[last].Venues, summarize(venue.ID, venue.Name, counts))
	}

	return areas, nil
}

func (v *VenueService) Search(ctx context.Context, term string) (*SearchResult, error) {
	venues, err := v.repos.Venue.SearchByName(ctx, term)
	if err != nil {
		return nil, err
	}

	counts, err := v.repos.Venue.UpcomingShowCounts(ctx, v.now())
	if err != nil {
		return nil, err
	}

	result := &SearchResult{Count: len(venues), Data: make([]ListingSummary, 0, len(venues))}
	for _, venue := range venues {
		result.Data = append(result.Data, summarize(venue.ID, venue.Name, counts))
	}
	return result, nil
}

// Get returns a venue with its shows split into past and upcoming.
func (v *VenueService) Get(ctx context.Context, id int64) (*VenueDetail, error) {
	venue, err := v.GetRaw(ctx, id)
	if err != nil {
		return nil, err
	}

	shows, err := v.repos.Show.ListForVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &VenueDetail{
		Venue:         venue,
		PastShows:     make([]ArtistShow, 0),
		UpcomingShows: make([]ArtistShow, 0),
	}

	now := v.now()
	for _, show := range shows {
		entry := ArtistShow{
			ArtistID:  show.ArtistID,
			StartTime: show.StartTime,
		}
		if show.Artist != nil {
			entry.ArtistName = show.Artist.Name
			entry.ArtistImageLink = show.Artist.ImageLink
		}

		if show.IsUpcoming(now) {
			detail.UpcomingShows = append(detail.UpcomingShows, entry)
		} else {
			detail.PastShows = append(detail.PastShows, entry)
		}
	}
	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)

	return detail, nil
}

// GetRaw returns the stored venue without show data, for edit forms.
func (v *VenueService) GetRaw(ctx context.Context, id int64) (*model.Venue, error) {
	venue, err := v.repos.Venue.GetOne(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, venueNotFound()
		}
		return nil, err
	}
	return venue, nil
}

func (v *VenueService) Page(ctx context.Context, page, pageSize int) (*repository.Pagination[model.Venue], error) {
	return v.repos.Venue.Page(ctx, repository.NewPageRequest(page, pageSize, nil, "id ASC"))
}

// Latest returns the most recently listed venues for the home page.
func (v *VenueService) Latest(ctx context.Context, limit int) ([]*model.Venue, error) {
	return v.repos.Venue.Latest(ctx, limit)
}

func (v *VenueService) Create(ctx context.Context, venue *model.Venue) error {
	venue.ID = 0
	err := v.server.DB.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return v.repos.Venue.CreateWithTx(ctx, tx, venue)
	})
	if err != nil {
		return err
	}

	v.server.Logger.Info().Int64("venue_id", venue.ID).Str("name", venue.Name).Msg("venue listed")
	notifyListing(ctx, v.server.Logger, v.jobs, job.ListingCreatedPayload{
		Kind: job.KindVenue,
		ID:   venue.ID,
		Name: venue.Name,
	})
	return nil
}

// Update replaces every editable field of venue id with the values in venue.
func (v *VenueService) Update(ctx context.Context, id int64, venue *model.Venue) error {
	existing, err := v.GetRaw(ctx, id)
	if err != nil {
		return err
	}

	venue.ID = id
	venue.CreatedAt = existing.CreatedAt

	return v.server.DB.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return v.repos.Venue.UpdateWithTx(ctx, tx, venue)
	})
}

// Delete removes the venue and every show booked at it.
func (v *VenueService) Delete(ctx context.Context, id int64) error {
	// Checked outside the transaction: SQLite runs on one connection.
	exists, err := v.repos.Venue.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return venueNotFound()
	}

	var removed int64
	err = v.server.DB.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		n, err := v.repos.Show.DeleteForVenueWithTx(ctx, tx, id)
		if err != nil {
			return err
		}
		removed = n
		return v.repos.Venue.DeleteWithTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	v.server.Logger.Info().Int64("venue_id", id).Int64("shows_removed", removed).Msg("venue deleted")
	return nil
}

func venueNotFound() *errs.HTTPError {
	code := "VENUE_NOT_FOUND"
	return errs.NewNotFoundError("Venue not found", true, &code)
}
