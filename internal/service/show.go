package service

import (
	"context"

	"github.com/deppfellow/fyyur/internal/errs"
	"github.com/deppfellow/fyyur/internal/lib/job"
	"github.com/deppfellow/fyyur/internal/model"
	"github.com/deppfellow/fyyur/internal/repository"
	"github.com/deppfellow/fyyur/internal/server"
	"github.com/uptrace/bun"
)

type ShowService struct {
	server *server.Server
	repos  *repository.Repositories
	jobs   job.Enqueuer
}

func NewShowService(s *server.Server, repos *repository.Repositories, jobs job.Enqueuer) *ShowService {
	return &ShowService{
		server: s,
		repos:  repos,
		jobs:   jobs,
	}
}

// List returns every show, earliest first, with venue and artist names.
func (sv *ShowService) List(ctx context.Context) ([]ShowListing, error) {
	shows, err := sv.repos.Show.ListWithRelations(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]ShowListing, 0, len(shows))
	for _, show := range shows {
		listing := ShowListing{
			ID:        show.ID,
			VenueID:   show.VenueID,
			ArtistID:  show.ArtistID,
			StartTime: show.StartTime,
		}
		if show.Venue != nil {
			listing.VenueName = show.Venue.Name
		}
		if show.Artist != nil {
			listing.ArtistName = show.Artist.Name
			listing.ArtistImageLink = show.Artist.ImageLink
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func (sv *ShowService) Page(ctx context.Context, page, pageSize int) (*repository.Pagination[model.Show], error) {
	return sv.repos.Show.Page(ctx, repository.NewPageRequest(page, pageSize, nil, "start_time ASC", "id ASC"))
}

// Create books a show. The venue and artist must already exist.
func (sv *ShowService) Create(ctx context.Context, show *model.Show) error {
	if err := sv.checkReferences(ctx, show); err != nil {
		return err
	}

	show.ID = 0
	err := sv.server.DB.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return sv.repos.Show.CreateWithTx(ctx, tx, show)
	})
	if err != nil {
		return err
	}

	sv.server.Logger.Info().
		Int64("show_id", show.ID).
		Int64("venue_id", show.VenueID).
		Int64("artist_id", show.ArtistID).
		Time("start_time", show.StartTime).
		Msg("show listed")
	notifyListing(ctx, sv.server.Logger, sv.jobs, job.ListingCreatedPayload{
		Kind: job.KindShow,
		ID:   show.ID,
	})
	return nil
}

func (sv *ShowService) checkReferences(ctx context.Context, show *model.Show) error {
	venueExists, err := sv.repos.Venue.Exists(ctx, show.VenueID)
	if err != nil {
		return err
	}
	if !venueExists {
		return missingReference("venue", "venue_id")
	}

	artistExists, err := sv.repos.Artist.Exists(ctx, show.ArtistID)
	if err != nil {
		return err
	}
	if !artistExists {
		return missingReference("artist", "artist_id")
	}
	return nil
}

func missingReference(entity, field string) *errs.HTTPError {
	code := "FOREIGN_KEY_VIOLATION"
	return errs.NewBadRequestError(
		"The referenced "+entity+" does not exist",
		true,
		&code,
		[]errs.FieldError{{Field: field, Error: "does not exist"}},
		nil,
	)
}
