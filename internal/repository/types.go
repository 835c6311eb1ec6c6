package repository

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// QueryFilter is a WHERE clause and its arguments.
type QueryFilter struct {
	Schema string
	Args   []any
}

func NewQueryFilter(schema string, args ...any) *QueryFilter {
	return &QueryFilter{Schema: schema, Args: args}
}

// PageRequest describes one page of a listing. Page is 1-based; a page size
// below 1 means DefaultPageSize.
type PageRequest struct {
	page     int
	pageSize int
	filter   *QueryFilter
	orders   []string // "id ASC", "name DESC"
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func NewPageRequest(page, pageSize int, filter *QueryFilter, orders ...string) *PageRequest {
	return &PageRequest{page: page, pageSize: pageSize, filter: filter, orders: orders}
}

func (p *PageRequest) GetPage() int {
	if p.page < 1 {
		p.page = 1
	}
	return p.page
}

func (p *PageRequest) GetPageSize() int {
	if p.pageSize < 1 {
		p.pageSize = DefaultPageSize
	}
	if p.pageSize > MaxPageSize {
		p.pageSize = MaxPageSize
	}
	return p.pageSize
}

func (p *PageRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

func (p *PageRequest) GetFilter() *QueryFilter {
	return p.filter
}

func (p *PageRequest) GetOrders() []string {
	return p.orders
}

// Pagination is one page of results plus the total row count.
type Pagination[T any] struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	Total    int  `json:"total"`
	Items    []*T `json:"items"`
}

func NewDefaultPagination[T any](page, pageSize int) *Pagination[T] {
	return &Pagination[T]{Page: page, PageSize: pageSize, Items: make([]*T, 0)}
}

type CrudRepository[T any] interface {
	GetOne(ctx context.Context, id any) (*T, error)
	GetAll(ctx context.Context) ([]*T, error)
	List(ctx context.Context, filter *QueryFilter, orders ...string) ([]*T, error)
	Create(ctx context.Context, entity ...*T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id any) error
	Exists(ctx context.Context, id any) (bool, error)
}

type TransactionRepository[T any] interface {
	CreateWithTx(ctx context.Context, tx bun.Tx, entity ...*T) error
	UpdateWithTx(ctx context.Context, tx bun.Tx, entity *T) error
	DeleteWithTx(ctx context.Context, tx bun.Tx, id any) error
}

type PageQueryRepository[T any] interface {
	Page(ctx context.Context, page *PageRequest) (*Pagination[T], error)
}

// Repository combines CRUD, paging and transactional operations and exposes
// bun's query builders for entity-specific queries.
type Repository[T any] interface {
	CrudRepository[T]
	PageQueryRepository[T]
	TransactionRepository[T]
	Dialect() schema.Dialect
	NewSelect() *bun.SelectQuery
}
