package repository

import (
	"context"

	"peaceconnect_service/internal/model"

	"gorm.io/gorm"
)

// ArticleFilter narrows List. A nil IsTestimony matches both kinds.
type ArticleFilter struct {
	Status      string
	IsTestimony *bool
}

type ArticleRepository interface {
	List(ctx context.Context, filter ArticleFilter) ([]*model.Article, error)
	Get(ctx context.Context, id uint) (*model.Article, error)
	Create(ctx context.Context, article *model.Article) error
	Update(ctx context.Context, id uint, values map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	// SlugTaken reports whether another article than exceptID uses slug.
	SlugTaken(ctx context.Context, slug string, exceptID uint) (bool, error)
	Count(ctx context.Context, status string) (int64, error)
}

type articleRepository struct {
	crud[model.Article]
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{crud[model.Article]{db: db}}
}

func (r *articleRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("articles").
		Select("articles.*, event_categories.name AS category_name, themes.name AS theme_name").
		Joins("LEFT JOIN event_categories ON articles.category_id = event_categories.id").
		Joins("LEFT JOIN themes ON articles.theme_id = themes.id")
}

func (r *articleRepository) List(ctx context.Context, filter ArticleFilter) ([]*model.Article, error) {
	tx := r.joined(ctx)
	if filter.Status != "" {
		tx = tx.Where("articles.status = ?", filter.Status)
	}
	if filter.IsTestimony != nil {
		tx = tx.Where("articles.is_testimony = ?", *filter.IsTestimony)
	}

	var articles []*model.Article
	err := tx.Order("articles.published_date DESC").
		Order("articles.created_at DESC").
		Order("articles.id DESC").
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) Get(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	if err := r.joined(ctx).Where("articles.id = ?", id).Take(&article).Error; err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	return r.create(ctx, article)
}

func (r *articleRepository) Update(ctx context.Context, id uint, values map[string]interface{}) (bool, error) {
	return r.update(ctx, id, values)
}

func (r *articleRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return r.delete(ctx, id)
}

func (r *articleRepository) SlugTaken(ctx context.Context, slug string, exceptID uint) (bool, error) {
	n, err := r.count(ctx, "slug = ? AND id <> ?", slug, exceptID)
	return n > 0, err
}

func (r *articleRepository) Count(ctx context.Context, status string) (int64, error) {
	if status == "" {
		return r.count(ctx, "")
	}
	return r.count(ctx, "status = ?", status)
}
