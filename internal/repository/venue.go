package repository

import (
	"context"
	"time"

	"github.com/deppfellow/fyyur/internal/model"
	"github.com/uptrace/bun"
)

type VenueRepository struct {
	Repository[model.Venue]
	db *bun.DB
}

func NewVenueRepository(db *bun.DB) *VenueRepository {
	return &VenueRepository{
		Repository: NewRepository[model.Venue](db),
		db:         db,
	}
}

// ListByArea returns every venue ordered by state, city and name so callers
// can group consecutive rows into areas.
func (r *VenueRepository) ListByArea(ctx context.Context) ([]*model.Venue, error) {
	venues := make([]*model.Venue, 0)
	err := r.db.NewSelect().
		Model(&venues).
		Order("v.state ASC", "v.city ASC", "v.name ASC", "v.id ASC").
		Scan(ctx)
	return venues, err
}

// SearchByName matches term anywhere in the name, case-insensitively.
func (r *VenueRepository) SearchByName(ctx context.Context, term string) ([]*model.Venue, error) {
	venues := make([]*model.Venue, 0)
	err := r.db.NewSelect().
		Model(&venues).
		Where("LOWER(v.name) LIKE LOWER(?)", likePattern(term)).
		Order("v.id ASC").
		Scan(ctx)
	return venues, err
}

// Latest returns the most recently listed venues.
func (r *VenueRepository) Latest(ctx context.Context, limit int) ([]*model.Venue, error) {
	venues := make([]*model.Venue, 0)
	err := r.db.NewSelect().Model(&venues).Order("v.id DESC").Limit(limit).Scan(ctx)
	return venues, err
}

// UpcomingShowCounts maps venue id to its number of shows starting at or
// after now. Venues without upcoming shows are absent.
func (r *VenueRepository) UpcomingShowCounts(ctx context.Context, now time.Time) (map[int64]int, error) {
	return upcomingShowCounts(ctx, r.db, "venue_id", now)
}
