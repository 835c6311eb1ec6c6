package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/fyyur/internal/model"
	"github.com/deppfellow/fyyur/internal/repository"
	"github.com/deppfellow/fyyur/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newRepos(t *testing.T) (*repository.Repositories, *bun.DB) {
	t.Helper()
	srv := testutil.NewServer(t)
	return repository.NewRepositories(srv), srv.DB.DB
}

func venue(name, city, state string) *model.Venue {
	return &model.Venue{Name: name, City: city, State: state, Address: "1 Main St"}
}

func TestVenueCreateAndGet(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	v := venue("The Dueling Pianos Bar", "New York", "NY")
	v.Genres = model.Genres{"Classical", "R&B", "Hip-Hop"}
	v.SeekingTalent = true
	require.NoError(t, repos.Venue.Create(ctx, v))
	require.NotZero(t, v.ID)

	got, err := repos.Venue.GetOne(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.Name, got.Name)
	assert.Equal(t, model.Genres{"Classical", "R&B", "Hip-Hop"}, got.Genres)
	assert.True(t, got.SeekingTalent)

	exists, err := repos.Venue.Exists(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repos.Venue.Exists(ctx, v.ID+100)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestVenueSearchByName(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Venue.Create(ctx,
		venue("The Musical Hop", "San Francisco", "CA"),
		venue("Park Square Live Music & Coffee", "San Francisco", "CA"),
		venue("The Dueling Pianos Bar", "New York", "NY"),
	))

	found, err := repos.Venue.SearchByName(ctx, "MUSIC")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "The Musical Hop", found[0].Name)
	assert.Equal(t, "Park Square Live Music & Coffee", found[1].Name)

	found, err = repos.Venue.SearchByName(ctx, "nothing like this")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestVenueListByArea(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Venue.Create(ctx,
		venue("Zeta", "San Francisco", "CA"),
		venue("Alpha", "New York", "NY"),
		venue("Beta", "Oakland", "CA"),
		venue("Alpha", "San Francisco", "CA"),
	))

	venues, err := repos.Venue.ListByArea(ctx)
	require.NoError(t, err)

	var got []string
	for _, v := range venues {
		got = append(got, v.State+"/"+v.City+"/"+v.Name)
	}
	assert.Equal(t, []string{
		"CA/Oakland/Beta",
		"CA/San Francisco/Alpha",
		"CA/San Francisco/Zeta",
		"NY/New York/Alpha",
	}, got)
}

func TestPage(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C", "D", "E"} {
		require.NoError(t, repos.Artist.Create(ctx, &model.Artist{Name: name, City: "Austin", State: "TX"}))
	}

	page, err := repos.Artist.Page(ctx, repository.NewPageRequest(2, 2, nil, "name ASC"))
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "C", page.Items[0].Name)
	assert.Equal(t, "D", page.Items[1].Name)

	page, err = repos.Artist.Page(ctx, repository.NewPageRequest(1, 10, repository.NewQueryFilter("name = ?", "Z")))
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Items)
}

func TestPageRequestBounds(t *testing.T) {
	p := repository.NewPageRequest(0, 0, nil)
	assert.Equal(t, 1, p.GetPage())
	assert.Equal(t, repository.DefaultPageSize, p.GetPageSize())
	assert.Zero(t, p.GetOffset())

	p = repository.NewPageRequest(3, 1000, nil)
	assert.Equal(t, repository.MaxPageSize, p.GetPageSize())
	assert.Equal(t, 2*repository.MaxPageSize, p.GetOffset())
}

func TestShowsAndUpcomingCounts(t *testing.T) {
	repos, db := newRepos(t)
	ctx := context.Background()

	hop := venue("The Musical Hop", "San Francisco", "CA")
	bar := venue("The Dueling Pianos Bar", "New York", "NY")
	require.NoError(t, repos.Venue.Create(ctx, hop, bar))

	artist := &model.Artist{Name: "Guns N Petals", City: "San Francisco", State: "CA"}
	require.NoError(t, repos.Artist.Create(ctx, artist))

	now := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Show.Create(ctx,
		&model.Show{VenueID: hop.ID, ArtistID: artist.ID, StartTime: now.Add(-48 * time.Hour)},
		&model.Show{VenueID: hop.ID, ArtistID: artist.ID, StartTime: now},
		&model.Show{VenueID: hop.ID, ArtistID: artist.ID, StartTime: now.Add(24 * time.Hour)},
		&model.Show{VenueID: bar.ID, ArtistID: artist.ID, StartTime: now.Add(72 * time.Hour)},
	))

	counts, err := repos.Venue.UpcomingShowCounts(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{hop.ID: 2, bar.ID: 1}, counts)

	artistCounts, err := repos.Artist.UpcomingShowCounts(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 3, artistCounts[artist.ID])

	shows, err := repos.Show.ListForVenue(ctx, hop.ID)
	require.NoError(t, err)
	require.Len(t, shows, 3)
	require.NotNil(t, shows[0].Artist)
	assert.Equal(t, "Guns N Petals", shows[0].Artist.Name)
	assert.True(t, shows[0].StartTime.Before(shows[2].StartTime))

	all, err := repos.Show.ListWithRelations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "The Dueling Pianos Bar", all[3].Venue.Name)

	err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		n, err := repos.Show.DeleteForVenueWithTx(ctx, tx, hop.ID)
		if err != nil {
			return err
		}
		assert.EqualValues(t, 3, n)
		return repos.Venue.DeleteWithTx(ctx, tx, hop.ID)
	})
	require.NoError(t, err)

	left, err := repos.Show.ListForArtist(ctx, artist.ID)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, bar.ID, left[0].VenueID)
}
