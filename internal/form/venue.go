package form

import "github.com/deppfellow/fyyur/internal/model"

type VenueForm struct {
	Name               string   `form:"name" json:"name" validate:"required,max=120"`
	City               string   `form:"city" json:"city" validate:"required,max=120"`
	State              string   `form:"state" json:"state" validate:"required,usstate"`
	Address            string   `form:"address" json:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" json:"phone" validate:"omitempty,phone"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" json:"website_link" validate:"omitempty,url,max=120"`
	Genres             []string `form:"genres" json:"genres" validate:"dive,genre"`
	SeekingTalent      bool     `form:"seeking_talent" json:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description" validate:"max=500"`
}

// Validate trims surrounding whitespace, then checks the field rules.
func (f *VenueForm) Validate() error {
	trim(&f.Name, &f.City, &f.State, &f.Address, &f.Phone,
		&f.ImageLink, &f.FacebookLink, &f.WebsiteLink, &f.SeekingDescription)
	return validate.Struct(f)
}

func (f *VenueForm) ToModel() *model.Venue {
	return &model.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		Genres:             model.Genres(f.Genres),
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}
}

// FromVenue prefills an edit form.
func FromVenue(v *model.Venue) *VenueForm {
	return &VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.WebsiteLink,
		Genres:             []string(v.Genres),
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

// HasGenre is used by templates to mark selected options.
func (f *VenueForm) HasGenre(g string) bool {
	return hasGenre(f.Genres, g)
}
