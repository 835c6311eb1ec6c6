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

type ArtistService struct {
	server *server.Server
	repos  *repository.Repositories
	jobs   job.Enqueuer
	now    Clock
}

func NewArtistService(s *server.Server, repos *repository.Repositories, jobs job.Enqueuer) *ArtistService {
	return &ArtistService{
		server: s,
		repos:  repos,
		jobs:   jobs,
		now:    systemClock,
	}
}

// List returns every artist ordered by id.
func (a *ArtistService) List(ctx context.Context) ([]ListingSummary, error) {
	artists, err := a.repos.Artist.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := a.repos.Artist.UpcomingShowCounts(ctx, a.now())
	if err != nil {
		return nil, err
	}

	list := make([]ListingSummary, 0, len(artists))
	for _, artist := range artists {
		list = append(list, summarize(artist.ID, artist.Name, counts))
	}
	return list, nil
}

func (a *ArtistService) Search(ctx context.Context, term string) (*SearchResult, error) {
	artists, err := a.repos.Artist.SearchByName(ctx, term)
	if err != nil {
		return nil, err
	}

	counts, err := a.repos.Artist.UpcomingShowCounts(ctx, a.now())
	if err != nil {
		return nil, err
	}

	result := &SearchResult{Count: len(artists), Data: make([]ListingSummary, 0, len(artists))}
	for _, artist := range artists {
		result.Data = append(result.Data, summarize(artist.ID, artist.Name, counts))
	}
	return result, nil
}

// Get returns an artist with the venues of its past and upcoming shows.
func (a *ArtistService) Get(ctx context.Context, id int64) (*ArtistDetail, error) {
	artist, err := a.GetRaw(ctx, id)
	if err != nil {
		return nil, err
	}

	shows, err := a.repos.Show.ListForArtist(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ArtistDetail{
		Artist:        artist,
		PastShows:     make([]VenueShow, 0),
		UpcomingShows: make([]VenueShow, 0),
	}

	now := a.now()
	for _, show := range shows {
		entry := VenueShow{
			VenueID:   show.VenueID,
			StartTime: show.StartTime,
		}
		if show.Venue != nil {
			entry.VenueName = show.Venue.Name
			entry.VenueImageLink = show.Venue.ImageLink
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

func (a *ArtistService) GetRaw(ctx context.Context, id int64) (*model.Artist, error) {
	artist, err := a.repos.Artist.GetOne(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, artistNotFound()
		}
		return nil, err
	}
	return artist, nil
}

func (a *ArtistService) Page(ctx context.Context, page, pageSize int) (*repository.Pagination[model.Artist], error) {
	return a.repos.Artist.Page(ctx, repository.NewPageRequest(page, pageSize, nil, "id ASC"))
}

func (a *ArtistService) Latest(ctx context.Context, limit int) ([]*model.Artist, error) {
	return a.repos.Artist.Latest(ctx, limit)
}

func (a *ArtistService) Create(ctx context.Context, artist *model.Artist) error {
	artist.ID = 0
	err := a.server.DB.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return a.repos.Artist.CreateWithTx(ctx, tx, artist)
	})
	if err != nil {
		return err
	}

	a.server.Logger.Info().Int64("artist_id", artist.ID).Str("name", artist.Name).Msg("artist listed")
	notifyListing(ctx, a.server.Logger, a.jobs, job.ListingCreatedPayload{
		Kind: job.KindArtist,
		ID:   artist.ID,
		Name: artist.Name,
	})
	return nil
}

func (a *ArtistService) Update(ctx context.Context, id int64, artist *model.Artist) error {
	existing, err := a.GetRaw(ctx, id)
	if err != nil {
		return err
	}

	artist.ID = id
	artist.CreatedAt = existing.CreatedAt

	return a.server.DB.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return a.repos.Artist.UpdateWithTx(ctx, tx, artist)
	})
}

// Delete removes the artist and every show it was booked for.
func (a *ArtistService) Delete(ctx context.Context, id int64) error {
	exists, err := a.repos.Artist.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return artistNotFound()
	}

	var removed int64
	err = a.server.DB.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		n, err := a.repos.Show.DeleteForArtistWithTx(ctx, tx, id)
		if err != nil {
			return err
		}
		removed = n
		return a.repos.Artist.DeleteWithTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	a.server.Logger.Info().Int64("artist_id", id).Int64("shows_removed", removed).Msg("artist deleted")
	return nil
}

func artistNotFound() *errs.HTTPError {
	code := "ARTIST_NOT_FOUND"
	return errs.NewNotFoundError("Artist not found", true, &code)
}
