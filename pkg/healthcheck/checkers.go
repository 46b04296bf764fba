package healthcheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"peaceconnect_service/pkg/httpClient"
)

type PingContexter interface {
	PingContext(ctx context.Context) error
}

type DatabaseChecker struct {
	Name_   string
	DB      PingContexter
	Timeout time.Duration
}

func (d *DatabaseChecker) Name() string {
	if d.Name_ != "" {
		return d.Name_
	}
	return "database-checker"
}

func (d *DatabaseChecker) Check(ctx context.Context) error {
	if d.DB == nil {
		return errors.New("database not configured")
	}

	timeout := d.Timeout
	if timeout == 0 {
		timeout = 3 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return d.DB.PingContext(ctx)
}

type RedisChecker struct {
	Name_    string
	PingFunc func(ctx context.Context) error
	Timeout  time.Duration
}

func (rc *RedisChecker) Name() string {
	if rc.Name_ != "" {
		return rc.Name_
	}
	return "redis-checker"
}

func (rc *RedisChecker) Check(ctx context.Context) error {
	if rc.PingFunc == nil {
		return errors.New("redis ping not configured")
	}

	timeout := rc.Timeout
	if timeout == 0 {
		timeout = 3 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return rc.PingFunc(ctx)
}

// HTTPChecker probes a URL with caching disabled. Any 2xx status is
// healthy; other statuses and transport errors are not.
type HTTPChecker struct {
	Name_   string
	URL     string
	Client  httpClient.HTTPClient
	Timeout time.Duration
}

func NewHTTPChecker(url string, client httpClient.HTTPClient) *HTTPChecker {
	return &HTTPChecker{URL: url, Client: client}
}

func (h *HTTPChecker) Name() string {
	if h.Name_ != "" {
		return h.Name_
	}
	return fmt.Sprintf("http-checker-%s", h.URL)
}

func (h *HTTPChecker) Check(ctx context.Context) error {
	if h.URL == "" {
		return errors.New("url not configured")
	}

	client := h.Client
	if client == nil {
		client = httpClient.NewClient()
	}

	timeout := h.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := client.Get(ctx, h.URL, httpClient.NoCacheHeaders)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", h.URL, err)
	}
	if !resp.OK() {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, h.URL)
	}
	return nil
}

// CustomChecker adapts a function.
type CustomChecker struct {
	Name_     string
	CheckFunc func(ctx context.Context) error
}

func (c *CustomChecker) Name() string {
	if c.Name_ != "" {
		return c.Name_
	}
	return "custom-checker"
}

func (c *CustomChecker) Check(ctx context.Context) error {
	if c.CheckFunc == nil {
		return errors.New("check function not configured")
	}
	return c.CheckFunc(ctx)
}
