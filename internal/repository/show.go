package repository

import (
	"context"
	"time"

	"github.com/deppfellow/fyyur/internal/model"
	"github.com/uptrace/bun"
)

type ShowRepository struct {
	Repository[model.Show]
	db *bun.DB
}

func NewShowRepository(db *bun.DB) *ShowRepository {
	return &ShowRepository{
		Repository: NewRepository[model.Show](db),
		db:         db,
	}
}

// ListWithRelations returns every show with its venue and artist joined,
// earliest first.
func (r *ShowRepository) ListWithRelations(ctx context.Context) ([]*model.Show, error) {
	shows := make([]*model.Show, 0)
	err := r.db.NewSelect().
		Model(&shows).
		Relation("Venue").
		Relation("Artist").
		Order("s.start_time ASC", "s.id ASC").
		Scan(ctx)
	return shows, err
}

// ListForVenue returns a venue's shows with the performing artist joined.
func (r *ShowRepository) ListForVenue(ctx context.Context, venueID int64) ([]*model.Show, error) {
	shows := make([]*model.Show, 0)
	err := r.db.NewSelect().
		Model(&shows).
		Relation("Artist").
		Where("s.venue_id = ?", venueID).
		Order("s.start_time ASC", "s.id ASC").
		Scan(ctx)
	return shows, err
}

// ListForArtist returns an artist's shows with the hosting venue joined.
func (r *ShowRepository) ListForArtist(ctx context.Context, artistID int64) ([]*model.Show, error) {
	shows := make([]*model.Show, 0)
	err := r.db.NewSelect().
		Model(&shows).
		Relation("Venue").
		Where("s.artist_id = ?", artistID).
		Order("s.start_time ASC", "s.id ASC").
		Scan(ctx)
	return shows, err
}

func (r *ShowRepository) DeleteForVenueWithTx(ctx context.Context, tx bun.Tx, venueID int64) (int64, error) {
	return deleteShowsBy(ctx, tx, "venue_id", venueID)
}

func (r *ShowRepository) DeleteForArtistWithTx(ctx context.Context, tx bun.Tx, artistID int64) (int64, error) {
	return deleteShowsBy(ctx, tx, "artist_id", artistID)
}

func deleteShowsBy(ctx context.Context, tx bun.Tx, column string, id int64) (int64, error) {
	res, err := tx.NewDelete().
		Model((*model.Show)(nil)).
		Where("? = ?", bun.Ident(column), id).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type showCount struct {
	OwnerID int64 `bun:"owner_id"`
	Count   int   `bun:"show_count"`
}

// upcomingShowCounts groups shows starting at or after now by column.
func upcomingShowCounts(ctx context.Context, db bun.IDB, column string, now time.Time) (map[int64]int, error) {
	rows := make([]showCount, 0)
	err := db.NewSelect().
		Model((*model.Show)(nil)).
		ColumnExpr("? AS owner_id", bun.Ident(column)).
		ColumnExpr("COUNT(*) AS show_count").
		Where("s.start_time >= ?", now.UTC()).
		GroupExpr("?", bun.Ident(column)).
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(rows))
	for _, row := range rows {
		counts[row.OwnerID] = row.Count
	}
	return counts, nil
}

// likePattern wraps term for a substring LIKE. Wildcards inside term are
// passed through unescaped.
func likePattern(term string) string {
	return "%" + term + "%"
}
