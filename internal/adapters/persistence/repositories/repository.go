package repositories

import (
	"context"
	"errors"
	"strings"

	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Scope narrows a query
type Scope = func(*gorm.DB) *gorm.DB

// Repository is the transactional CRUD base shared by entity repositories
type Repository[T any] struct {
	db     *gorm.DB
	entity string
	pk     string
}

func newRepository[T any](db *gorm.DB, entity, pk string) Repository[T] {
	return Repository[T]{db: db, entity: entity, pk: pk}
}

// DB returns the connection for ctx, joining its transaction if any
func (r Repository[T]) DB(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db)
}

// Create inserts a row
func (r Repository[T]) Create(ctx context.Context, m *T) error {
	return r.translate(r.DB(ctx).Create(m).Error)
}

// Save writes every column of m
func (r Repository[T]) Save(ctx context.Context, m *T) error {
	return r.translate(r.DB(ctx).Save(m).Error)
}

// Delete removes m
func (r Repository[T]) Delete(ctx context.Context, m *T) error {
	return r.translate(r.DB(ctx).Delete(m).Error)
}

// GetByID loads a row by primary key
func (r Repository[T]) GetByID(ctx context.Context, id any, preloads ...string) (*T, error) {
	var m T
	q := r.DB(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Where(r.pk+" = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound(r.entity, id)
		}
		return nil, err
	}
	return &m, nil
}

// Exists reports whether a row with column = value exists
func (r Repository[T]) Exists(ctx context.Context, column string, value any, scopes ...Scope) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(new(T)).Scopes(scopes...).Where(column+" = ?", value).Count(&count).Error
	return count > 0, err
}

// ExistsOther is Exists ignoring the row identified by id
func (r Repository[T]) ExistsOther(ctx context.Context, column string, value, id any) (bool, error) {
	return r.Exists(ctx, column, value, func(db *gorm.DB) *gorm.DB {
		return db.Where(r.pk+" <> ?", id)
	})
}

// Find returns every row matching the scopes
func (r Repository[T]) Find(ctx context.Context, scopes ...Scope) ([]*T, error) {
	var items []*T
	err := r.DB(ctx).Scopes(scopes...).Find(&items).Error
	return items, err
}

// List returns one page of rows and the total count
func (r Repository[T]) List(ctx context.Context, page pagination.Page, scopes ...Scope) ([]*T, int64, error) {
	var items []*T
	var total int64

	if err := r.DB(ctx).Model(new(T)).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.DB(ctx).Scopes(scopes...).Scopes(page.Scope).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Count counts rows matching the scopes
func (r Repository[T]) Count(ctx context.Context, scopes ...Scope) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(new(T)).Scopes(scopes...).Count(&count).Error
	return count, err
}

func (r Repository[T]) translate(err error) error {
	return translateError(err, r.entity)
}

// translateError maps driver errors onto domain errors
func translateError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &domain.NotFoundError{Entity: entity}
	case IsUniqueViolation(err):
		return &domain.DuplicateError{Entity: entity, Field: "key"}
	}
	return err
}

// IsUniqueViolation recognizes unique-constraint rejections from every
// supported driver, translated or not.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

// Where builds an equality scope
func Where(column string, value any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}

// OrderBy builds an ordering scope
func OrderBy(order string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	}
}
