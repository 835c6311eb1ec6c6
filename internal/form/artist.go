package form

import (
	"slices"

	"github.com/deppfellow/fyyur/internal/model"
)

type ArtistForm struct {
	Name               string   `form:"name" json:"name" validate:"required,max=120"`
	City               string   `form:"city" json:"city" validate:"required,max=120"`
	State              string   `form:"state" json:"state" validate:"required,usstate"`
	Phone              string   `form:"phone" json:"phone" validate:"omitempty,phone"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" json:"website_link" validate:"omitempty,url,max=120"`
	Genres             []string `form:"genres" json:"genres" validate:"dive,genre"`
	SeekingVenue       bool     `form:"seeking_venue" json:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description" validate:"max=500"`
}

func (f *ArtistForm) Validate() error {
	trim(&f.Name, &f.City, &f.State, &f.Phone,
		&f.ImageLink, &f.FacebookLink, &f.WebsiteLink, &f.SeekingDescription)
	return validate.Struct(f)
}

func (f *ArtistForm) ToModel() *model.Artist {
	return &model.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		Genres:             model.Genres(f.Genres),
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}
}

func FromArtist(a *model.Artist) *ArtistForm {
	return &ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.WebsiteLink,
		Genres:             []string(a.Genres),
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

func (f *ArtistForm) HasGenre(g string) bool {
	return hasGenre(f.Genres, g)
}

func hasGenre(genres []string, g string) bool {
	return slices.Contains(genres, g)
}
