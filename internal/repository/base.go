package repository

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

type baseRepository[T any] struct {
	db *bun.DB
}

// NewRepository returns a generic repository for T backed by db.
func NewRepository[T any](db *bun.DB) Repository[T] {
	return &baseRepository[T]{db: db}
}

func (r *baseRepository[T]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *baseRepository[T]) NewSelect() *bun.SelectQuery { return r.db.NewSelect() }

func (r *baseRepository[T]) GetOne(ctx context.Context, id any) (*T, error) {
	entity := new(T)
	err := r.db.NewSelect().Model(entity).Where("?TableAlias.id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *baseRepository[T]) GetAll(ctx context.Context) ([]*T, error) {
	entities := make([]*T, 0)
	err := r.db.NewSelect().Model(&entities).Order("id ASC").Scan(ctx)
	return entities, err
}

func (r *baseRepository[T]) List(ctx context.Context, filter *QueryFilter, orders ...string) ([]*T, error) {
	entities := make([]*T, 0)
	query := r.db.NewSelect().Model(&entities)
	if filter != nil {
		query = query.Where(filter.Schema, filter.Args...)
	}
	if len(orders) > 0 {
		query = query.Order(orders...)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepository[T]) Exists(ctx context.Context, id any) (bool, error) {
	return r.db.NewSelect().Model((*T)(nil)).Where("?TableAlias.id = ?", id).Exists(ctx)
}

func (r *baseRepository[T]) Page(ctx context.Context, pageRequest *PageRequest) (*Pagination[T], error) {
	entities := make([]*T, 0)
	query := r.db.NewSelect().Model(&entities)
	if f := pageRequest.GetFilter(); f != nil {
		query = query.Where(f.Schema, f.Args...)
	}

	pagination := NewDefaultPagination[T](pageRequest.GetPage(), pageRequest.GetPageSize())
	total, err := query.Count(ctx)
	if err != nil || total == 0 {
		return pagination, err
	}

	orders := pageRequest.GetOrders()
	if len(orders) == 0 {
		orders = []string{"id ASC"}
	}

	err = query.
		Offset(pageRequest.GetOffset()).
		Limit(pageRequest.GetPageSize()).
		Order(orders...).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	pagination.Total = total
	pagination.Items = entities
	return pagination, nil
}

func (r *baseRepository[T]) Create(ctx context.Context, entity ...*T) error {
	return r.create(ctx, r.db, entity...)
}

func (r *baseRepository[T]) Update(ctx context.Context, entity *T) error {
	return r.update(ctx, r.db, entity)
}

func (r *baseRepository[T]) Delete(ctx context.Context, id any) error {
	return r.delete(ctx, r.db, id)
}

func (r *baseRepository[T]) CreateWithTx(ctx context.Context, tx bun.Tx, entity ...*T) error {
	return r.create(ctx, tx, entity...)
}

func (r *baseRepository[T]) UpdateWithTx(ctx context.Context, tx bun.Tx, entity *T) error {
	return r.update(ctx, tx, entity)
}

func (r *baseRepository[T]) DeleteWithTx(ctx context.Context, tx bun.Tx, id any) error {
	return r.delete(ctx, tx, id)
}

// create inserts one row at a time so generated ids are scanned back on
// every dialect, including MySQL which has no RETURNING.
func (r *baseRepository[T]) create(ctx context.Context, db bun.IDB, entity ...*T) error {
	for _, e := range entity {
		if _, err := db.NewInsert().Model(e).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *baseRepository[T]) update(ctx context.Context, db bun.IDB, entity *T) error {
	_, err := db.NewUpdate().Model(entity).WherePK().ExcludeColumn("created_at").Exec(ctx)
	return err
}

func (r *baseRepository[T]) delete(ctx context.Context, db bun.IDB, id any) error {
	_, err := db.NewDelete().Model((*T)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}
