package form

import (
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/fyyur/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validVenue() *VenueForm {
	return &VenueForm{
		Name:    "The Musical Hop",
		City:    "San Francisco",
		State:   "CA",
		Address: "1015 Folsom Street",
		Phone:   "123-123-1234",
		Genres:  []string{"Jazz", "Folk"},
	}
}

func failedFields(t *testing.T, err error) map[string]string {
	t.Helper()

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}

func TestVenueFormValid(t *testing.T) {
	f := validVenue()
	f.Name = "  The Musical Hop  "
	f.WebsiteLink = "https://www.themusicalhop.com"

	require.NoError(t, f.Validate())
	assert.Equal(t, "The Musical Hop", f.Name)
}

func TestVenueFormRequired(t *testing.T) {
	f := &VenueForm{}
	fields := failedFields(t, f.Validate())

	assert.Equal(t, "required", fields["name"])
	assert.Equal(t, "required", fields["city"])
	assert.Equal(t, "required", fields["state"])
	assert.Equal(t, "required", fields["address"])
}

func TestVenueFormRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *VenueForm)
		field  string
		tag    string
	}{
		{"unknown state", func(f *VenueForm) { f.State = "ZZ" }, "state", "usstate"},
		{"lowercase state", func(f *VenueForm) { f.State = "ca" }, "state", "usstate"},
		{"bad phone", func(f *VenueForm) { f.Phone = "call me" }, "phone", "phone"},
		{"short phone", func(f *VenueForm) { f.Phone = "123" }, "phone", "phone"},
		{"bad url", func(f *VenueForm) { f.FacebookLink = "facebook" }, "facebook_link", "url"},
		{"unknown genre", func(f *VenueForm) { f.Genres = []string{"Jazz", "Polka"} }, "genres[1]", "genre"},
		{"long description", func(f *VenueForm) {
			f.SeekingDescription = string(make([]byte, 501))
		}, "seeking_description", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validVenue()
			tt.mutate(f)
			fields := failedFields(t, f.Validate())
			assert.Equal(t, tt.tag, fields[tt.field])
		})
	}
}

func TestVenueFormRoundTrip(t *testing.T) {
	f := validVenue()
	f.SeekingTalent = true
	f.SeekingDescription = "Looking"

	v := f.ToModel()
	assert.Equal(t, model.Genres{"Jazz", "Folk"}, v.Genres)
	assert.True(t, v.SeekingTalent)

	assert.Equal(t, f, FromVenue(v))
	assert.True(t, f.HasGenre("Jazz"))
	assert.False(t, f.HasGenre("Pop"))
}

func TestArtistForm(t *testing.T) {
	f := &ArtistForm{Name: "Guns N Petals", City: "San Francisco", State: "CA"}
	require.NoError(t, f.Validate())

	a := f.ToModel()
	assert.Equal(t, "Guns N Petals", a.Name)
	assert.Equal(t, f, FromArtist(a))

	f.State = "XX"
	fields := failedFields(t, f.Validate())
	assert.Contains(t, fields, "state")
}

func TestShowForm(t *testing.T) {
	want := time.Date(2035, time.April, 1, 20, 0, 0, 0, time.UTC)

	for _, in := range []string{"2035-04-01 20:00:00", "2035-04-01T20:00", "2035-04-01T22:00:00+02:00"} {
		f := &ShowForm{ArtistID: 1, VenueID: 2, StartTime: in}
		require.NoError(t, f.Validate(), in)

		show, err := f.ToModel()
		require.NoError(t, err)
		assert.True(t, want.Equal(show.StartTime), in)
		assert.Equal(t, time.UTC, show.StartTime.Location())
		assert.Equal(t, int64(1), show.ArtistID)
		assert.Equal(t, int64(2), show.VenueID)
	}
}

func TestShowFormInvalid(t *testing.T) {
	f := &ShowForm{StartTime: "next friday"}
	fields := failedFields(t, f.Validate())

	assert.Equal(t, "required", fields["artist_id"])
	assert.Equal(t, "required", fields["venue_id"])
	assert.Equal(t, "starttime", fields["start_time"])

	_, err := f.ToModel()
	assert.Error(t, err)
}

func TestChoices(t *testing.T) {
	assert.Len(t, StateChoices, 51)
	assert.True(t, IsState("NY"))
	assert.False(t, IsState("XX"))
	assert.True(t, IsGenre("R&B"))
	assert.False(t, IsGenre("r&b"))
}
