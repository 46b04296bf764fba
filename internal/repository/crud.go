// Package repository stores the PeaceConnect models through GORM. Every
// repository is stateless over a *gorm.DB and safe for concurrent use.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned by Get when no row has the requested id.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique key is already taken.
var ErrDuplicate = errors.New("duplicate record")

// crud holds the operations shared by every table keyed on "id".
type crud[T any] struct {
	db *gorm.DB
}

func (r crud[T]) get(ctx context.Context, id uint) (*T, error) {
	var v T
	if err := r.db.WithContext(ctx).Take(&v, id).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r crud[T]) create(ctx context.Context, v *T) error {
	return translate(r.db.WithContext(ctx).Create(v).Error)
}

// update applies values to the row and reports whether the row exists.
// Rows whose values are unchanged still count as updated.
func (r crud[T]) update(ctx context.Context, id uint, values map[string]interface{}) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(values).Error; err != nil {
		return false, translate(err)
	}
	return true, nil
}

func (r crud[T]) delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r crud[T]) count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(new(T))
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if err := tx.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
