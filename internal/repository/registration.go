package repository

import (
	"context"
	"time"

	"peaceconnect_service/internal/model"

	"gorm.io/gorm"
)

type RegistrationRepository interface {
	ListForEvent(ctx context.Context, eventID uint) ([]*model.Registration, error)
	Get(ctx context.Context, id uint) (*model.Registration, error)
	Exists(ctx context.Context, eventID uint, email string) (bool, error)
	// Create inserts the registration and bumps the event's counter.
	Create(ctx context.Context, reg *model.Registration) error
	ConfirmAttendance(ctx context.Context, id uint, at time.Time) (bool, error)
	// Delete removes the registration and lowers the event's counter.
	Delete(ctx context.Context, id uint) (bool, error)
}

type registrationRepository struct {
	crud[model.Registration]
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{crud[model.Registration]{db: db}}
}

func (r *registrationRepository) ListForEvent(ctx context.Context, eventID uint) ([]*model.Registration, error) {
	var regs []*model.Registration
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("registration_date DESC").Order("id DESC").
		Find(&regs).Error
	return regs, err
}

func (r *registrationRepository) Get(ctx context.Context, id uint) (*model.Registration, error) {
	return r.get(ctx, id)
}

func (r *registrationRepository) Exists(ctx context.Context, eventID uint, email string) (bool, error) {
	n, err := r.count(ctx, "event_id = ? AND email = ?", eventID, email)
	return n > 0, err
}

func (r *registrationRepository) Create(ctx context.Context, reg *model.Registration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reg).Error; err != nil {
			return translate(err)
		}
		return tx.Model(&model.Event{}).Where("id = ?", reg.EventID).
			UpdateColumn("current_registrations", gorm.Expr("current_registrations + ?", 1)).Error
	})
}

func (r *registrationRepository) ConfirmAttendance(ctx context.Context, id uint, at time.Time) (bool, error) {
	return r.update(ctx, id, map[string]interface{}{
		"attendance_confirmed": true,
		"attendance_date":      at,
	})
}

func (r *registrationRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reg model.Registration
		if err := tx.Take(&reg, id).Error; err != nil {
			if translate(err) == ErrNotFound {
				return nil
			}
			return err
		}
		if err := tx.Delete(&reg).Error; err != nil {
			return err
		}
		deleted = true
		return tx.Model(&model.Event{}).
			Where("id = ? AND current_registrations > 0", reg.EventID).
			UpdateColumn("current_registrations", gorm.Expr("current_registrations - ?", 1)).Error
	})
	return deleted, err
}
