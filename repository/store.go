package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store is the persistence contract shared by every entity
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Paginate(ctx context.Context, page, perPage int) ([]T, int64, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*T, error)
	Delete(ctx context.Context, id uint) error
	WithTx(tx *gorm.DB) Store[T]
}

// CascadeFunc removes the rows that depend on the entity id before it is deleted.
// It always receives the transaction the delete runs in.
type CascadeFunc func(tx *gorm.DB, id uint) error

// GormStore implements Store on top of GORM
type GormStore[T any] struct {
	db      *gorm.DB
	cascade CascadeFunc
}

// NewGormStore creates a store for T. cascade may be nil.
func NewGormStore[T any](db *gorm.DB, cascade CascadeFunc) *GormStore[T] {
	return &GormStore[T]{db: db, cascade: cascade}
}

// WithTx returns a copy of the store bound to tx
func (s *GormStore[T]) WithTx(tx *gorm.DB) Store[T] {
	return &GormStore[T]{db: tx, cascade: s.cascade}
}

// List returns every row ordered by id
func (s *GormStore[T]) List(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, translateError(err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Paginate returns one page of rows and the total row count
func (s *GormStore[T]) Paginate(ctx context.Context, page, perPage int) ([]T, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	items := []T{}
	if err := s.db.WithContext(ctx).
		Order("id ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&items).Error; err != nil {
		return nil, 0, translateError(err)
	}
	if items == nil {
		items = []T{}
	}
	return items, total, nil
}

// Get returns the row with the given id or ErrNotFound
func (s *GormStore[T]) Get(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := s.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &entity, nil
}

// Create inserts entity and fills its generated columns
func (s *GormStore[T]) Create(ctx context.Context, entity *T) error {
	return translateError(s.db.WithContext(ctx).Create(entity).Error)
}

// Update writes only the columns present in fields
func (s *GormStore[T]) Update(ctx context.Context, id uint, fields map[string]interface{}) (*T, error) {
	db := s.db.WithContext(ctx)

	var entity T
	if err := db.First(&entity, id).Error; err != nil {
		return nil, translateError(err)
	}

	if len(fields) == 0 {
		return &entity, nil
	}

	if err := db.Model(&entity).Updates(fields).Error; err != nil {
		return nil, translateError(err)
	}

	// Reload so hooks, defaults and updated_at are reflected
	var updated T
	if err := db.First(&updated, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &updated, nil
}

// Delete removes the row and its dependents in a single transaction
func (s *GormStore[T]) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entity T
		if err := tx.First(&entity, id).Error; err != nil {
			return err
		}

		if s.cascade != nil {
			if err := s.cascade(tx, id); err != nil {
				return err
			}
		}

		return tx.Delete(&entity).Error
	})
	return translateError(err)
}
