package service

import (
	"context"
	"errors"
	"fmt"

	"peaceconnect_service/internal/model"
	"peaceconnect_service/internal/repository"

	"github.com/gosimple/slug"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	DefaultArticleStatus = "draft"
	PublishedStatus      = "published"
	DefaultAuthorName    = "Anonyme"
	DefaultAIFlagStatus  = "clean"
)

type ArticleService interface {
	List(ctx context.Context, filter repository.ArticleFilter) ([]*model.Article, error)
	Get(ctx context.Context, id uint) (*model.Article, error)
	Create(ctx context.Context, fields Fields) (uint, error)
	Update(ctx context.Context, id uint, fields Fields) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)

	// Comments lists an article's comments. approvedOnly is what public
	// readers see.
	Comments(ctx context.Context, articleID uint, approvedOnly bool) ([]*model.Comment, error)
	AddComment(ctx context.Context, articleID uint, fields Fields) (uint, error)
	// PublishedComments and AddPublicComment answer ErrNotFound unless the
	// article is published.
	PublishedComments(ctx context.Context, articleID uint) ([]*model.Comment, error)
	AddPublicComment(ctx context.Context, articleID uint, fields Fields) (uint, error)
	ApproveComment(ctx context.Context, id uint) (bool, error)
	DeleteComment(ctx context.Context, id uint) (bool, error)
}

type articleInput struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type commentInput struct {
	AuthorName string `json:"author_name" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

type articleService struct {
	articles  repository.ArticleRepository
	comments  repository.CommentRepository
	publisher Publisher
	clock     clockwork.Clock
	logger    *zap.Logger
}

func NewArticleService(
	articles repository.ArticleRepository,
	comments repository.CommentRepository,
	publisher Publisher,
	clock clockwork.Clock,
	logger *zap.Logger,
) ArticleService {
	return &articleService{
		articles:  articles,
		comments:  comments,
		publisher: publisher,
		clock:     clock,
		logger:    logger.Named("articles"),
	}
}

func (s *articleService) List(ctx context.Context, filter repository.ArticleFilter) ([]*model.Article, error) {
	return s.articles.List(ctx, filter)
}

func (s *articleService) Get(ctx context.Context, id uint) (*model.Article, error) {
	return s.articles.Get(ctx, id)
}

// Slugify derives a URL slug from a title, at most 255 characters.
func Slugify(title string) string {
	return truncate(slug.Make(title), 255)
}

// uniqueSlug returns base, or base-N for the first N not used by another
// article than id.
func (s *articleService) uniqueSlug(ctx context.Context, base string, id uint) (string, error) {
	if base == "" {
		base = "article"
	}
	proposal := base
	for i := 1; ; i++ {
		taken, err := s.articles.SlugTaken(ctx, proposal, id)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			return proposal, nil
		}
		suffix := fmt.Sprintf("-%d", i)
		proposal = truncate(base, 255-len(suffix)) + suffix
	}
}

func (s *articleService) prepare(ctx context.Context, id uint, fields Fields) (*model.Article, error) {
	in := articleInput{
		Title:   fields.Get("title"),
		Content: fields.Get("content"),
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	base := Slugify(in.Title)
	if custom := fields.Get("slug"); custom != "" {
		base = Slugify(custom)
	}
	articleSlug, err := s.uniqueSlug(ctx, base, id)
	if err != nil {
		return nil, err
	}

	categoryID, err := optionalID("category_id", fields.Get("category_id"))
	if err != nil {
		return nil, err
	}
	themeID, err := optionalID("theme_id", fields.Get("theme_id"))
	if err != nil {
		return nil, err
	}
	authorID, err := optionalID("author_id", fields.Get("author_id"))
	if err != nil {
		return nil, err
	}

	requiresValidation := true
	if fields.Has("requires_validation") {
		requiresValidation = parseBool(fields.Get("requires_validation"))
	}

	return &model.Article{
		Title:              truncate(in.Title, 255),
		Slug:               articleSlug,
		Content:            in.Content,
		Excerpt:            optional(fields.Get("excerpt"), 500),
		AuthorID:           authorID,
		AuthorName:         orDefault(fields.Get("author_name"), DefaultAuthorName, 100),
		CategoryID:         categoryID,
		ThemeID:            themeID,
		FeaturedImage:      optional(fields.Get("featured_image"), 255),
		Status:             orDefault(fields.Get("status"), DefaultArticleStatus, 50),
		IsTestimony:        parseBool(fields.Get("is_testimony")),
		RequiresValidation: requiresValidation,
	}, nil
}

func (s *articleService) Create(ctx context.Context, fields Fields) (uint, error) {
	article, err := s.prepare(ctx, 0, fields)
	if err != nil {
		return 0, err
	}
	if article.Status == PublishedStatus {
		now := s.clock.Now()
		article.PublishedDate = &now
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return 0, err
	}
	s.logger.Info("article created", zap.Uint("id", article.ID), zap.String("slug", article.Slug))
	s.publisher.Publish("article.created", article)
	return article.ID, nil
}

// Update rewrites the content columns. Author, testimony and validation
// flags are fixed at creation.
func (s *articleService) Update(ctx context.Context, id uint, fields Fields) (bool, error) {
	existing, err := s.articles.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	article, err := s.prepare(ctx, id, fields)
	if err != nil {
		return false, err
	}
	values := map[string]interface{}{
		"title":          article.Title,
		"slug":           article.Slug,
		"content":        article.Content,
		"excerpt":        article.Excerpt,
		"category_id":    article.CategoryID,
		"theme_id":       article.ThemeID,
		"featured_image": article.FeaturedImage,
		"status":         article.Status,
	}
	if article.Status == PublishedStatus && existing.PublishedDate == nil {
		values["published_date"] = s.clock.Now()
	}

	updated, err := s.articles.Update(ctx, id, values)
	if err == nil && updated {
		s.publisher.Publish("article.updated", map[string]uint{"id": id})
	}
	return updated, err
}

func (s *articleService) Delete(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.articles.Delete(ctx, id)
	if err == nil && deleted {
		s.publisher.Publish("article.deleted", map[string]uint{"id": id})
	}
	return deleted, err
}

func (s *articleService) Comments(ctx context.Context, articleID uint, approvedOnly bool) ([]*model.Comment, error) {
	status := ""
	if approvedOnly {
		status = repository.CommentApproved
	}
	return s.comments.ListForArticle(ctx, articleID, status)
}

// AddComment stores a pending comment. It is not listed publicly until
// approved.
func (s *articleService) AddComment(ctx context.Context, articleID uint, fields Fields) (uint, error) {
	if articleID == 0 {
		return 0, invalid("article_id", "Le champ obligatoire \"article_id\" est manquant.")
	}
	in := commentInput{
		AuthorName: fields.Get("author_name"),
		Content:    fields.Get("content"),
	}
	if err := validate(in); err != nil {
		return 0, err
	}
	if _, err := s.articles.Get(ctx, articleID); err != nil {
		return 0, err
	}

	userID, err := optionalID("user_id", fields.Get("user_id"))
	if err != nil {
		return 0, err
	}
	comment := &model.Comment{
		ArticleID:    articleID,
		UserID:       userID,
		AuthorName:   truncate(in.AuthorName, 100),
		Content:      in.Content,
		Status:       repository.CommentPending,
		AIFlagStatus: DefaultAIFlagStatus,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return 0, err
	}
	s.publisher.Publish("comment.created", comment)
	return comment.ID, nil
}

// published returns ErrNotFound for drafts so public readers cannot tell
// them apart from missing articles.
func (s *articleService) published(ctx context.Context, articleID uint) error {
	article, err := s.articles.Get(ctx, articleID)
	if err != nil {
		return err
	}
	if article.Status != PublishedStatus {
		return ErrNotFound
	}
	return nil
}

func (s *articleService) PublishedComments(ctx context.Context, articleID uint) ([]*model.Comment, error) {
	if err := s.published(ctx, articleID); err != nil {
		return nil, err
	}
	return s.comments.ListForArticle(ctx, articleID, repository.CommentApproved)
}

func (s *articleService) AddPublicComment(ctx context.Context, articleID uint, fields Fields) (uint, error) {
	if articleID != 0 {
		if err := s.published(ctx, articleID); err != nil {
			return 0, err
		}
	}
	return s.AddComment(ctx, articleID, fields)
}

func (s *articleService) ApproveComment(ctx context.Context, id uint) (bool, error) {
	return s.comments.Approve(ctx, id)
}

func (s *articleService) DeleteComment(ctx context.Context, id uint) (bool, error) {
	return s.comments.Delete(ctx, id)
}
