package service

import (
	"context"

	"peaceconnect_service/internal/model"
	"peaceconnect_service/internal/repository"

	"go.uber.org/zap"
)

const DefaultHelpStatus = "en_attente"

type HelpRequestService interface {
	List(ctx context.Context, filter repository.HelpRequestFilter) ([]*model.HelpRequest, error)
	Get(ctx context.Context, id uint) (*model.HelpRequest, error)
	Create(ctx context.Context, fields Fields) (uint, error)
	Update(ctx context.Context, id uint, fields Fields) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type helpRequestInput struct {
	HelpType     string `json:"help_type" validate:"required"`
	UrgencyLevel string `json:"urgency_level" validate:"required"`
	Situation    string `json:"situation" validate:"required"`
}

type helpRequestService struct {
	requests  repository.HelpRequestRepository
	publisher Publisher
	logger    *zap.Logger
}

func NewHelpRequestService(requests repository.HelpRequestRepository, publisher Publisher, logger *zap.Logger) HelpRequestService {
	return &helpRequestService{
		requests:  requests,
		publisher: publisher,
		logger:    logger.Named("help_requests"),
	}
}

func (s *helpRequestService) List(ctx context.Context, filter repository.HelpRequestFilter) ([]*model.HelpRequest, error) {
	return s.requests.List(ctx, filter)
}

func (s *helpRequestService) Get(ctx context.Context, id uint) (*model.HelpRequest, error) {
	return s.requests.Get(ctx, id)
}

func prepareHelpRequest(fields Fields) (*model.HelpRequest, error) {
	in := helpRequestInput{
		HelpType:     fields.Get("help_type"),
		UrgencyLevel: fields.Get("urgency_level"),
		Situation:    fields.Get("situation"),
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	return &model.HelpRequest{
		HelpType:      truncate(in.HelpType, 100),
		UrgencyLevel:  truncate(in.UrgencyLevel, 50),
		Situation:     in.Situation,
		Location:      optional(fields.Get("location"), 100),
		ContactMethod: optional(fields.Get("contact_method"), 100),
		Status:        orDefault(fields.Get("status"), DefaultHelpStatus, 50),
		Responsable:   optional(fields.Get("responsable"), 100),
	}, nil
}

func (s *helpRequestService) Create(ctx context.Context, fields Fields) (uint, error) {
	req, err := prepareHelpRequest(fields)
	if err != nil {
		return 0, err
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return 0, err
	}
	s.logger.Info("help request created",
		zap.Uint("id", req.ID),
		zap.String("help_type", req.HelpType),
		zap.String("urgency_level", req.UrgencyLevel))
	s.publisher.Publish("help_request.created", req)
	return req.ID, nil
}

// Update replaces every column; omitted optional fields are cleared.
func (s *helpRequestService) Update(ctx context.Context, id uint, fields Fields) (bool, error) {
	req, err := prepareHelpRequest(fields)
	if err != nil {
		return false, err
	}
	updated, err := s.requests.Update(ctx, id, map[string]interface{}{
		"help_type":      req.HelpType,
		"urgency_level":  req.UrgencyLevel,
		"situation":      req.Situation,
		"location":       req.Location,
		"contact_method": req.ContactMethod,
		"status":         req.Status,
		"responsable":    req.Responsable,
	})
	if err == nil && updated {
		s.publisher.Publish("help_request.updated", map[string]uint{"id": id})
	}
	return updated, err
}

func (s *helpRequestService) Delete(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.requests.Delete(ctx, id)
	if err == nil && deleted {
		s.publisher.Publish("help_request.deleted", map[string]uint{"id": id})
	}
	return deleted, err
}
