package repository

import (
	"context"

	"peaceconnect_service/internal/model"

	"gorm.io/gorm"
)

// EventFilter narrows List. Zero fields are ignored.
type EventFilter struct {
	Status     string
	CategoryID uint
	Visibility string
}

type EventRepository interface {
	List(ctx context.Context, filter EventFilter) ([]*model.Event, error)
	Get(ctx context.Context, id uint) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, id uint, values map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context, status string) (int64, error)
	TotalRegistrations(ctx context.Context) (int64, error)
}

type eventRepository struct {
	crud[model.Event]
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{crud[model.Event]{db: db}}
}

// joined selects events with their category and theme names.
func (r *eventRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("events").
		Select("events.*, event_categories.name AS category_name, themes.name AS theme_name").
		Joins("LEFT JOIN event_categories ON events.category_id = event_categories.id").
		Joins("LEFT JOIN themes ON events.theme_id = themes.id")
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]*model.Event, error) {
	tx := r.joined(ctx)
	if filter.Status != "" {
		tx = tx.Where("events.status = ?", filter.Status)
	}
	if filter.CategoryID != 0 {
		tx = tx.Where("events.category_id = ?", filter.CategoryID)
	}
	if filter.Visibility != "" {
		tx = tx.Where("events.visibility = ?", filter.Visibility)
	}

	var events []*model.Event
	if err := tx.Order("events.event_date ASC").Order("events.id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Get(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := r.joined(ctx).Where("events.id = ?", id).Take(&event).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.create(ctx, event)
}

func (r *eventRepository) Update(ctx context.Context, id uint, values map[string]interface{}) (bool, error) {
	return r.update(ctx, id, values)
}

func (r *eventRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return r.delete(ctx, id)
}

// Count counts events, optionally only those with status.
func (r *eventRepository) Count(ctx context.Context, status string) (int64, error) {
	if status == "" {
		return r.count(ctx, "")
	}
	return r.count(ctx, "status = ?", status)
}

func (r *eventRepository) TotalRegistrations(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Event{}).
		Select("COALESCE(SUM(current_registrations), 0)").
		Scan(&total).Error
	return total, err
}
