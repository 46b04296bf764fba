package service

import (
	"context"
	"encoding/json"
	"time"

	"peaceconnect_service/internal/model"
	"peaceconnect_service/internal/repository"
	"peaceconnect_service/pkg/redisManager"

	"go.uber.org/zap"
)

const (
	categoriesCacheKey = "peaceconnect:catalog:categories"
	themesCacheKey     = "peaceconnect:catalog:themes"
	DefaultCacheTTL    = 10 * time.Minute
)

// Cache is a string key/value store with expiry. Get returns
// redisManager.Nil for a missing key.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) (string, error) { return "", redisManager.Nil }
func (nopCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (nopCache) Delete(context.Context, ...string) error { return nil }

// NopCache never stores anything.
func NopCache() Cache {
	return nopCache{}
}

func strPtr(s string) *string { return &s }

// DefaultCategories and DefaultThemes are seeded at startup.
var DefaultCategories = []model.Category{
	{Name: "Ateliers de médiation", Description: strPtr("Ateliers pratiques de médiation et résolution de conflits"), Icon: strPtr("🤝"), Color: strPtr("#4CAF50")},
	{Name: "Formations", Description: strPtr("Sessions de formation et ateliers éducatifs"), Icon: strPtr("📚"), Color: strPtr("#2196F3")},
	{Name: "Campagnes de sensibilisation", Description: strPtr("Campagnes d'information et de sensibilisation"), Icon: strPtr("📢"), Color: strPtr("#FF9800")},
	{Name: "Conférences", Description: strPtr("Conférences et présentations"), Icon: strPtr("🎤"), Color: strPtr("#9C27B0")},
	{Name: "Rencontres communautaires", Description: strPtr("Réunions et rencontres avec la communauté"), Icon: strPtr("👥"), Color: strPtr("#00BCD4")},
}

var DefaultThemes = []model.Theme{
	{Name: "Paix et résolution de conflits", Description: strPtr("Thèmes liés à la paix et la gestion des conflits"), Icon: strPtr("☮️")},
	{Name: "Justice et droits humains", Description: strPtr("Justice, droits humains et État de droit"), Icon: strPtr("⚖️")},
	{Name: "Inclusion et diversité", Description: strPtr("Inclusion sociale et acceptation de la diversité"), Icon: strPtr("🌈")},
	{Name: "Prévention de la violence", Description: strPtr("Prévention de la violence et promotion de la sécurité"), Icon: strPtr("🛡️")},
	{Name: "Dialogue intercommunautaire", Description: strPtr("Dialogue et compréhension entre communautés"), Icon: strPtr("🤲")},
}

type CatalogService interface {
	Categories(ctx context.Context) ([]*model.Category, error)
	CreateCategory(ctx context.Context, fields Fields) (uint, error)
	UpdateCategory(ctx context.Context, id uint, fields Fields) (bool, error)
	DeleteCategory(ctx context.Context, id uint) (bool, error)

	Themes(ctx context.Context) ([]*model.Theme, error)
	CreateTheme(ctx context.Context, fields Fields) (uint, error)
	UpdateTheme(ctx context.Context, id uint, fields Fields) (bool, error)
	DeleteTheme(ctx context.Context, id uint) (bool, error)

	// SeedDefaults inserts the default categories and themes that are
	// missing.
	SeedDefaults(ctx context.Context) error
}

type nameInput struct {
	Name string `json:"name" validate:"required"`
}

type catalogService struct {
	categories repository.CategoryRepository
	themes     repository.ThemeRepository
	cache      Cache
	ttl        time.Duration
	logger     *zap.Logger
}

func NewCatalogService(
	categories repository.CategoryRepository,
	themes repository.ThemeRepository,
	cache Cache,
	ttl time.Duration,
	logger *zap.Logger,
) CatalogService {
	if cache == nil {
		cache = NopCache()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &catalogService{
		categories: categories,
		themes:     themes,
		cache:      cache,
		ttl:        ttl,
		logger:     logger.Named("catalog"),
	}
}

// cached serves key from the cache, loading and storing it on a miss.
// Cache failures fall back to load.
func cached[T any](ctx context.Context, s *catalogService, key string, load func(context.Context) ([]*T, error)) ([]*T, error) {
	raw, err := s.cache.Get(ctx, key)
	if err == nil {
		var rows []*T
		if err := json.Unmarshal([]byte(raw), &rows); err == nil {
			return rows, nil
		}
		s.logger.Warn("discarding corrupt cache entry", zap.String("key", key))
	} else if !redisManager.IsKeyNotExist(err) {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	rows, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(rows); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return rows, nil
}

func (s *catalogService) invalidate(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *catalogService) Categories(ctx context.Context) ([]*model.Category, error) {
	return cached(ctx, s, categoriesCacheKey, s.categories.List)
}

func prepareCategory(fields Fields) (*model.Category, error) {
	in := nameInput{Name: fields.Get("name")}
	if err := validate(in); err != nil {
		return nil, err
	}
	return &model.Category{
		Name:        truncate(in.Name, 100),
		Description: optional(fields.Get("description"), 0),
		Icon:        optional(fields.Get("icon"), 50),
		Color:       optional(fields.Get("color"), 20),
	}, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, fields Fields) (uint, error) {
	category, err := prepareCategory(fields)
	if err != nil {
		return 0, err
	}
	if err := s.categories.Create(ctx, category); err != nil {
		s.logger.Warn("create category failed", zap.String("name", category.Name), zap.Error(err))
		return 0, uniqueName(category.Name, err)
	}
	s.invalidate(ctx, categoriesCacheKey)
	return category.ID, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uint, fields Fields) (bool, error) {
	category, err := prepareCategory(fields)
	if err != nil {
		return false, err
	}
	updated, err := s.categories.Update(ctx, id, map[string]interface{}{
		"name":        category.Name,
		"description": category.Description,
		"icon":        category.Icon,
		"color":       category.Color,
	})
	if err != nil {
		s.logger.Warn("update category failed", zap.Uint("id", id), zap.Error(err))
		return false, uniqueName(category.Name, err)
	}
	if updated {
		s.invalidate(ctx, categoriesCacheKey)
	}
	return updated, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.categories.Delete(ctx, id)
	if err != nil {
		s.logger.Warn("delete category failed", zap.Uint("id", id), zap.Error(err))
		return false, err
	}
	if deleted {
		s.invalidate(ctx, categoriesCacheKey)
	}
	return deleted, nil
}

func (s *catalogService) Themes(ctx context.Context) ([]*model.Theme, error) {
	return cached(ctx, s, themesCacheKey, s.themes.List)
}

func prepareTheme(fields Fields) (*model.Theme, error) {
	in := nameInput{Name: fields.Get("name")}
	if err := validate(in); err != nil {
		return nil, err
	}
	return &model.Theme{
		Name:        truncate(in.Name, 100),
		Description: optional(fields.Get("description"), 0),
		Icon:        optional(fields.Get("icon"), 50),
	}, nil
}

func (s *catalogService) CreateTheme(ctx context.Context, fields Fields) (uint, error) {
	theme, err := prepareTheme(fields)
	if err != nil {
		return 0, err
	}
	if err := s.themes.Create(ctx, theme); err != nil {
		s.logger.Warn("create theme failed", zap.String("name", theme.Name), zap.Error(err))
		return 0, uniqueName(theme.Name, err)
	}
	s.invalidate(ctx, themesCacheKey)
	return theme.ID, nil
}

func (s *catalogService) UpdateTheme(ctx context.Context, id uint, fields Fields) (bool, error) {
	theme, err := prepareTheme(fields)
	if err != nil {
		return false, err
	}
	updated, err := s.themes.Update(ctx, id, map[string]interface{}{
		"name":        theme.Name,
		"description": theme.Description,
		"icon":        theme.Icon,
	})
	if err != nil {
		s.logger.Warn("update theme failed", zap.Uint("id", id), zap.Error(err))
		return false, uniqueName(theme.Name, err)
	}
	if updated {
		s.invalidate(ctx, themesCacheKey)
	}
	return updated, nil
}

func (s *catalogService) DeleteTheme(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.themes.Delete(ctx, id)
	if err != nil {
		s.logger.Warn("delete theme failed", zap.Uint("id", id), zap.Error(err))
		return false, err
	}
	if deleted {
		s.invalidate(ctx, themesCacheKey)
	}
	return deleted, nil
}

func (s *catalogService) SeedDefaults(ctx context.Context) error {
	for _, c := range DefaultCategories {
		category := c
		if err := s.categories.Ensure(ctx, &category); err != nil {
			return err
		}
	}
	for _, t := range DefaultThemes {
		theme := t
		if err := s.themes.Ensure(ctx, &theme); err != nil {
			return err
		}
	}
	s.invalidate(ctx, categoriesCacheKey)
	s.invalidate(ctx, themesCacheKey)
	s.logger.Info("default catalog ensured",
		zap.Int("categories", len(DefaultCategories)),
		zap.Int("themes", len(DefaultThemes)))
	return nil
}
