package form

import "github.com/deppfellow/fyyur/internal/model"

type ShowForm struct {
	ArtistID  int64  `form:"artist_id" json:"artist_id" validate:"required,min=1"`
	VenueID   int64  `form:"venue_id" json:"venue_id" validate:"required,min=1"`
	StartTime string `form:"start_time" json:"start_time" validate:"required,starttime"`
}

func (f *ShowForm) Validate() error {
	trim(&f.StartTime)
	return validate.Struct(f)
}

// ToModel fails only when StartTime was never validated.
func (f *ShowForm) ToModel() (*model.Show, error) {
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return nil, err
	}
	return &model.Show{
		ArtistID:  f.ArtistID,
		VenueID:   f.VenueID,
		StartTime: start,
	}, nil
}
