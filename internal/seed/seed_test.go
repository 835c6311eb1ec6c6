package seed_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/deppfellow/fyyur/internal/repository"
	"github.com/deppfellow/fyyur/internal/seed"
	"github.com/deppfellow/fyyur/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefault(t *testing.T) {
	f, err := seed.Parse(bytes.NewReader(seed.Default))
	require.NoError(t, err)

	assert.Len(t, f.Venues, 3)
	assert.Len(t, f.Artists, 3)
	assert.Len(t, f.Shows, 5)
	assert.Equal(t, "The Musical Hop", f.Venues[0].Name)
	assert.Equal(t, []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"}, f.Venues[0].Genres)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := seed.Parse(strings.NewReader("venues:\n  - name: X\n    capacity: 10\n"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	srv := testutil.NewServer(t)
	repos := repository.NewRepositories(srv)
	ctx := context.Background()

	f, err := seed.Parse(bytes.NewReader(seed.Default))
	require.NoError(t, err)

	res, err := seed.Load(ctx, srv.DB.DB, repos, f)
	require.NoError(t, err)
	assert.Equal(t, &seed.Result{Venues: 3, Artists: 3, Shows: 5}, res)

	shows, err := repos.Show.ListWithRelations(ctx)
	require.NoError(t, err)
	require.Len(t, shows, 5)
	assert.Equal(t, "The Musical Hop", shows[0].Venue.Name)
	assert.Equal(t, "Guns N Petals", shows[0].Artist.Name)
}

func TestLoadUnknownVenueRollsBack(t *testing.T) {
	srv := testutil.NewServer(t)
	repos := repository.NewRepositories(srv)
	ctx := context.Background()

	f := &seed.Fixture{
		Artists: []seed.Artist{{Name: "Solo", City: "Austin", State: "TX"}},
		Shows:   []seed.Show{{Venue: "Nowhere", Artist: "Solo"}},
	}

	_, err := seed.Load(ctx, srv.DB.DB, repos, f)
	require.ErrorContains(t, err, `unknown venue "Nowhere"`)

	artists, err := repos.Artist.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, artists)
}
