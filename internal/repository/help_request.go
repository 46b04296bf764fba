package repository

import (
	"context"

	"peaceconnect_service/internal/model"

	"gorm.io/gorm"
)

// HelpRequestFilter narrows List. HelpType matches as a substring, the
// other fields exactly.
type HelpRequestFilter struct {
	HelpType     string
	Status       string
	UrgencyLevel string
}

type HelpRequestRepository interface {
	List(ctx context.Context, filter HelpRequestFilter) ([]*model.HelpRequest, error)
	Get(ctx context.Context, id uint) (*model.HelpRequest, error)
	Create(ctx context.Context, req *model.HelpRequest) error
	Update(ctx context.Context, id uint, values map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type helpRequestRepository struct {
	crud[model.HelpRequest]
}

func NewHelpRequestRepository(db *gorm.DB) HelpRequestRepository {
	return &helpRequestRepository{crud[model.HelpRequest]{db: db}}
}

func (r *helpRequestRepository) List(ctx context.Context, filter HelpRequestFilter) ([]*model.HelpRequest, error) {
	tx := r.db.WithContext(ctx)
	if filter.HelpType != "" {
		tx = tx.Where("help_type LIKE ?", "%"+filter.HelpType+"%")
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.UrgencyLevel != "" {
		tx = tx.Where("urgency_level = ?", filter.UrgencyLevel)
	}

	var reqs []*model.HelpRequest
	err := tx.Order("created_at DESC").Order("id DESC").Find(&reqs).Error
	return reqs, err
}

func (r *helpRequestRepository) Get(ctx context.Context, id uint) (*model.HelpRequest, error) {
	return r.get(ctx, id)
}

func (r *helpRequestRepository) Create(ctx context.Context, req *model.HelpRequest) error {
	return r.create(ctx, req)
}

func (r *helpRequestRepository) Update(ctx context.Context, id uint, values map[string]interface{}) (bool, error) {
	return r.update(ctx, id, values)
}

func (r *helpRequestRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return r.delete(ctx, id)
}

func (r *helpRequestRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.WithContext(ctx).Model(&model.HelpRequest{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
