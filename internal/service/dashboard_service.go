package service

import (
	"context"
	"fmt"

	"peaceconnect_service/internal/repository"
)

// DashboardStats is the admin overview.
type DashboardStats struct {
	TotalEvents          int64            `json:"total_events"`
	UpcomingEvents       int64            `json:"upcoming_events"`
	TotalRegistrations   int64            `json:"total_registrations"`
	PublishedArticles    int64            `json:"published_articles"`
	PendingComments      int64            `json:"pending_comments"`
	TotalHelpRequests    int64            `json:"total_help_requests"`
	HelpRequestsByStatus map[string]int64 `json:"help_requests_by_status"`
}

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	events   repository.EventRepository
	articles repository.ArticleRepository
	comments repository.CommentRepository
	requests repository.HelpRequestRepository
}

func NewDashboardService(
	events repository.EventRepository,
	articles repository.ArticleRepository,
	comments repository.CommentRepository,
	requests repository.HelpRequestRepository,
) DashboardService {
	return &dashboardService{
		events:   events,
		articles: articles,
		comments: comments,
		requests: requests,
	}
}

// Stats counts upcoming events as the planned ones.
func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var (
		stats DashboardStats
		err   error
	)
	if stats.TotalEvents, err = s.events.Count(ctx, ""); err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	if stats.UpcomingEvents, err = s.events.Count(ctx, DefaultEventStatus); err != nil {
		return nil, fmt.Errorf("upcoming events: %w", err)
	}
	if stats.TotalRegistrations, err = s.events.TotalRegistrations(ctx); err != nil {
		return nil, fmt.Errorf("registrations: %w", err)
	}
	if stats.PublishedArticles, err = s.articles.Count(ctx, PublishedStatus); err != nil {
		return nil, fmt.Errorf("articles: %w", err)
	}
	if stats.PendingComments, err = s.comments.Count(ctx, repository.CommentPending); err != nil {
		return nil, fmt.Errorf("comments: %w", err)
	}
	if stats.HelpRequestsByStatus, err = s.requests.CountByStatus(ctx); err != nil {
		return nil, fmt.Errorf("help requests: %w", err)
	}
	for _, n := range stats.HelpRequestsByStatus {
		stats.TotalHelpRequests += n
	}
	return &stats, nil
}
