package service

import (
	"context"
	"errors"
	"strconv"

	"peaceconnect_service/internal/model"
	"peaceconnect_service/internal/repository"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	DefaultEventCapacity   = 50
	DefaultEventStatus     = "planned"
	DefaultEventVisibility = "public"
	DefaultRegistration    = "registered"
)

type EventService interface {
	List(ctx context.Context, filter repository.EventFilter) ([]*model.Event, error)
	Get(ctx context.Context, id uint) (*model.Event, error)
	Create(ctx context.Context, fields Fields) (uint, error)
	Update(ctx context.Context, id uint, fields Fields) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)

	Registrations(ctx context.Context, eventID uint) ([]*model.Registration, error)
	Register(ctx context.Context, eventID uint, fields Fields) (uint, error)
	ConfirmAttendance(ctx context.Context, registrationID uint) (bool, error)
	Unregister(ctx context.Context, registrationID uint) (bool, error)
}

type eventInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location" validate:"required"`
	EventDate   string `json:"event_date" validate:"required"`
	CategoryID  string `json:"category_id" validate:"required"`
}

type registrationInput struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type eventService struct {
	events        repository.EventRepository
	registrations repository.RegistrationRepository
	publisher     Publisher
	clock         clockwork.Clock
	logger        *zap.Logger
}

func NewEventService(
	events repository.EventRepository,
	registrations repository.RegistrationRepository,
	publisher Publisher,
	clock clockwork.Clock,
	logger *zap.Logger,
) EventService {
	return &eventService{
		events:        events,
		registrations: registrations,
		publisher:     publisher,
		clock:         clock,
		logger:        logger.Named("events"),
	}
}

func (s *eventService) List(ctx context.Context, filter repository.EventFilter) ([]*model.Event, error) {
	return s.events.List(ctx, filter)
}

func (s *eventService) Get(ctx context.Context, id uint) (*model.Event, error) {
	return s.events.Get(ctx, id)
}

// prepare validates and truncates fields into a full event.
func (s *eventService) prepare(fields Fields) (*model.Event, error) {
	in := eventInput{
		Title:       fields.Get("title"),
		Description: fields.Get("description"),
		Location:    fields.Get("location"),
		EventDate:   fields.Get("event_date"),
		CategoryID:  fields.Get("category_id"),
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	eventDate, err := parseDate("event_date", in.EventDate)
	if err != nil {
		return nil, err
	}
	endDate, err := optionalDate("end_date", fields.Get("end_date"))
	if err != nil {
		return nil, err
	}
	categoryID, err := parseID("category_id", in.CategoryID)
	if err != nil {
		return nil, err
	}
	themeID, err := optionalID("theme_id", fields.Get("theme_id"))
	if err != nil {
		return nil, err
	}
	organizerID, err := optionalID("organizer_id", fields.Get("organizer_id"))
	if err != nil {
		return nil, err
	}

	capacity := DefaultEventCapacity
	if raw := fields.Get("capacity"); raw != "" {
		capacity, _ = strconv.Atoi(raw)
	}

	return &model.Event{
		Title:       truncate(in.Title, 200),
		Description: in.Description,
		Location:    truncate(in.Location, 255),
		EventDate:   eventDate,
		EndDate:     endDate,
		Capacity:    max(1, capacity),
		CategoryID:  categoryID,
		ThemeID:     themeID,
		OrganizerID: organizerID,
		Status:      orDefault(fields.Get("status"), DefaultEventStatus, 50),
		Visibility:  orDefault(fields.Get("visibility"), DefaultEventVisibility, 50),
		ImageURL:    optional(fields.Get("image_url"), 255),
	}, nil
}

func (s *eventService) Create(ctx context.Context, fields Fields) (uint, error) {
	event, err := s.prepare(fields)
	if err != nil {
		return 0, err
	}
	if err := s.events.Create(ctx, event); err != nil {
		return 0, err
	}
	s.logger.Info("event created", zap.Uint("id", event.ID), zap.String("title", event.Title))
	s.publisher.Publish("event.created", event)
	return event.ID, nil
}

// Update replaces every editable column. The organizer is kept.
func (s *eventService) Update(ctx context.Context, id uint, fields Fields) (bool, error) {
	event, err := s.prepare(fields)
	if err != nil {
		return false, err
	}
	updated, err := s.events.Update(ctx, id, map[string]interface{}{
		"title":       event.Title,
		"description": event.Description,
		"location":    event.Location,
		"event_date":  event.EventDate,
		"end_date":    event.EndDate,
		"capacity":    event.Capacity,
		"category_id": event.CategoryID,
		"theme_id":    event.ThemeID,
		"status":      event.Status,
		"visibility":  event.Visibility,
		"image_url":   event.ImageURL,
	})
	if err == nil && updated {
		s.publisher.Publish("event.updated", map[string]uint{"id": id})
	}
	return updated, err
}

func (s *eventService) Delete(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.events.Delete(ctx, id)
	if err == nil && deleted {
		s.publisher.Publish("event.deleted", map[string]uint{"id": id})
	}
	return deleted, err
}

func (s *eventService) Registrations(ctx context.Context, eventID uint) ([]*model.Registration, error) {
	return s.registrations.ListForEvent(ctx, eventID)
}

// Register signs fields' participant up to the event. An email may
// register once per event.
func (s *eventService) Register(ctx context.Context, eventID uint, fields Fields) (uint, error) {
	if eventID == 0 {
		return 0, invalid("event_id", "Le champ obligatoire \"event_id\" est manquant.")
	}
	in := registrationInput{
		FullName: fields.Get("full_name"),
		Email:    fields.Get("email"),
	}
	if err := validate(in); err != nil {
		return 0, err
	}

	if _, err := s.events.Get(ctx, eventID); err != nil {
		return 0, err
	}
	email := truncate(in.Email, 100)
	exists, err := s.registrations.Exists(ctx, eventID, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrDuplicateRegistration
	}

	userID, err := optionalID("user_id", fields.Get("user_id"))
	if err != nil {
		return 0, err
	}
	reg := &model.Registration{
		EventID:  eventID,
		UserID:   userID,
		Email:    email,
		FullName: truncate(in.FullName, 100),
		Phone:    optional(fields.Get("phone"), 20),
		Status:   orDefault(fields.Get("status"), DefaultRegistration, 50),
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, ErrDuplicateRegistration
		}
		return 0, err
	}

	s.logger.Info("registration created", zap.Uint("event_id", eventID), zap.Uint("id", reg.ID))
	s.publisher.Publish("registration.created", reg)
	return reg.ID, nil
}

func (s *eventService) ConfirmAttendance(ctx context.Context, registrationID uint) (bool, error) {
	return s.registrations.ConfirmAttendance(ctx, registrationID, s.clock.Now())
}

func (s *eventService) Unregister(ctx context.Context, registrationID uint) (bool, error) {
	return s.registrations.Delete(ctx, registrationID)
}
