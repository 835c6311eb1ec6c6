package repository

import (
	"context"
	"time"

	"github.com/deppfellow/fyyur/internal/model"
	"github.com/uptrace/bun"
)

type ArtistRepository struct {
	Repository[model.Artist]
	db *bun.DB
}

func NewArtistRepository(db *bun.DB) *ArtistRepository {
	return &ArtistRepository{
		Repository: NewRepository[model.Artist](db),
		db:         db,
	}
}

func (r *ArtistRepository) ListOrdered(ctx context.Context) ([]*model.Artist, error) {
	artists := make([]*model.Artist, 0)
	err := r.db.NewSelect().Model(&artists).Order("a.id ASC").Scan(ctx)
	return artists, err
}

// SearchByName matches term anywhere in the name, case-insensitively.
func (r *ArtistRepository) SearchByName(ctx context.Context, term string) ([]*model.Artist, error) {
	artists := make([]*model.Artist, 0)
	err := r.db.NewSelect().
		Model(&artists).
		Where("LOWER(a.name) LIKE LOWER(?)", likePattern(term)).
		Order("a.id ASC").
		Scan(ctx)
	return artists, err
}

func (r *ArtistRepository) Latest(ctx context.Context, limit int) ([]*model.Artist, error) {
	artists := make([]*model.Artist, 0)
	err := r.db.NewSelect().Model(&artists).Order("a.id DESC").Limit(limit).Scan(ctx)
	return artists, err
}

func (r *ArtistRepository) UpcomingShowCounts(ctx context.Context, now time.Time) (map[int64]int, error) {
	return upcomingShowCounts(ctx, r.db, "artist_id", now)
}
