package repository

import (
	"context"

	"peaceconnect_service/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]*model.Category, error)
	Get(ctx context.Context, id uint) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, id uint, values map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	// Ensure inserts category unless one with the same name exists.
	Ensure(ctx context.Context, category *model.Category) error
}

type ThemeRepository interface {
	List(ctx context.Context) ([]*model.Theme, error)
	Get(ctx context.Context, id uint) (*model.Theme, error)
	Create(ctx context.Context, theme *model.Theme) error
	Update(ctx context.Context, id uint, values map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Ensure(ctx context.Context, theme *model.Theme) error
}

// named is the shared implementation of the name-keyed lookup tables.
type named[T any] struct {
	crud[T]
}

func (r named[T]) List(ctx context.Context) ([]*T, error) {
	var rows []*T
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r named[T]) Get(ctx context.Context, id uint) (*T, error) {
	return r.get(ctx, id)
}

func (r named[T]) Create(ctx context.Context, v *T) error {
	return r.create(ctx, v)
}

func (r named[T]) Update(ctx context.Context, id uint, values map[string]interface{}) (bool, error) {
	return r.update(ctx, id, values)
}

func (r named[T]) Delete(ctx context.Context, id uint) (bool, error) {
	return r.delete(ctx, id)
}

func (r named[T]) ensure(ctx context.Context, name string, v *T) error {
	return r.db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(v).Error
}

type categoryRepository struct {
	named[model.Category]
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{named[model.Category]{crud[model.Category]{db: db}}}
}

func (r *categoryRepository) Ensure(ctx context.Context, category *model.Category) error {
	return r.ensure(ctx, category.Name, category)
}

type themeRepository struct {
	named[model.Theme]
}

func NewThemeRepository(db *gorm.DB) ThemeRepository {
	return &themeRepository{named[model.Theme]{crud[model.Theme]{db: db}}}
}

func (r *themeRepository) Ensure(ctx context.Context, theme *model.Theme) error {
	return r.ensure(ctx, theme.Name, theme)
}
