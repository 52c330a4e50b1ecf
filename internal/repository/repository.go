// Package repository provides a generic CRUD repository over GORM plus one
// typed repository per aggregate. Eager loading of navigation properties is
// expressed as a list of association names translated to Preload calls.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

// Repository is a generic data-access wrapper for a single entity type.
type Repository[T any] struct {
	db *gorm.DB
}

// New creates a repository for the entity type T.
func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// DB exposes the underlying GORM handle for callers composing raw queries.
func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

// Add persists a new entity. A nil entity fails fast.
func (r *Repository[T]) Add(entity *T) (*T, error) {
	if entity == nil {
		return nil, errors.New("repository: cannot add a nil entity")
	}
	if err := r.db.Create(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

// Update overwrites the row with the given id. When the id does not exist it
// returns (nil, nil) rather than an error; callers must check for nil.
func (r *Repository[T]) Update(id string, entity *T) (*T, error) {
	if entity == nil {
		return nil, errors.New("repository: cannot update with a nil entity")
	}

	var existing T
	if err := r.db.Where("id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	// Select("*") forces zero-valued fields to be written too, so an update
	// overwrites every mutable column rather than patching non-zero ones.
	err := r.db.Model(&existing).Where("id = ?", id).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(entity).Error
	if err != nil {
		return nil, err
	}

	var updated T
	if err := r.db.Where("id = ?", id).First(&updated).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the row with the given id. Missing rows are reported with
// gorm.ErrRecordNotFound.
func (r *Repository[T]) Delete(id string) error {
	var existing T
	if err := r.db.Where("id = ?", id).First(&existing).Error; err != nil {
		return err
	}
	return r.db.Unscoped().Where("id = ?", id).Delete(&existing).Error
}

// GetByID fetches a single row by id, or (nil, nil) when absent.
func (r *Repository[T]) GetByID(id string) (*T, error) {
	var entity T
	if err := r.db.Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// GetAll returns every row of the entity table.
func (r *Repository[T]) GetAll() ([]T, error) {
	var entities []T
	if err := r.db.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// GetAllWithInclude returns every row with the named associations eagerly loaded.
func (r *Repository[T]) GetAllWithInclude(associations ...string) ([]T, error) {
	var entities []T
	if err := r.QueryWithInclude(associations...).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Query returns a composable query for the entity table. Callers may add
// further filtering before materializing.
func (r *Repository[T]) Query() *gorm.DB {
	var entity T
	return r.db.Model(&entity)
}

// QueryWithInclude returns a composable query with the named associations
// attached as eager loads.
func (r *Repository[T]) QueryWithInclude(associations ...string) *gorm.DB {
	q := r.Query()
	for _, assoc := range associations {
		q = q.Preload(assoc)
	}
	return q
}

// Exists reports whether a row with the given id exists.
func (r *Repository[T]) Exists(id string) (bool, error) {
	var count int64
	if err := r.Query().Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
