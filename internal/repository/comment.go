package repository

import (
	"context"

	"peaceconnect_service/internal/model"

	"gorm.io/gorm"
)

const (
	CommentPending  = "pending"
	CommentApproved = "approved"
)

type CommentRepository interface {
	// ListForArticle lists the article's comments, newest first. An empty
	// status lists every comment.
	ListForArticle(ctx context.Context, articleID uint, status string) ([]*model.Comment, error)
	Get(ctx context.Context, id uint) (*model.Comment, error)
	Create(ctx context.Context, comment *model.Comment) error
	Approve(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context, status string) (int64, error)
}

type commentRepository struct {
	crud[model.Comment]
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{crud[model.Comment]{db: db}}
}

func (r *commentRepository) ListForArticle(ctx context.Context, articleID uint, status string) ([]*model.Comment, error) {
	tx := r.db.WithContext(ctx).Where("article_id = ?", articleID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	var comments []*model.Comment
	err := tx.Order("created_at DESC").Order("id DESC").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Get(ctx context.Context, id uint) (*model.Comment, error) {
	return r.get(ctx, id)
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.create(ctx, comment)
}

func (r *commentRepository) Approve(ctx context.Context, id uint) (bool, error) {
	return r.update(ctx, id, map[string]interface{}{"status": CommentApproved})
}

func (r *commentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return r.delete(ctx, id)
}

func (r *commentRepository) Count(ctx context.Context, status string) (int64, error) {
	if status == "" {
		return r.count(ctx, "")
	}
	return r.count(ctx, "status = ?", status)
}
