package healthcheck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type mockPinger struct {
	shouldFail bool
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	if m.shouldFail {
		return errors.New("database unreachable")
	}
	return nil
}

func TestPingChecker(t *testing.T) {
	checker := &PingChecker{}
	if checker.Name() != "ping" {
		t.Errorf("Expected name 'ping', got '%s'", checker.Name())
	}
	if err := checker.Check(context.Background()); err != nil {
		t.Errorf("PingChecker.Check() should not return error, got: %v", err)
	}
}

func TestDatabaseChecker(t *testing.T) {
	checker := &DatabaseChecker{Name_: "test-db", DB: &mockPinger{}}
	if checker.Name() != "test-db" {
		t.Errorf("Expected name 'test-db', got '%s'", checker.Name())
	}
	if err := checker.Check(context.Background()); err != nil {
		t.Errorf("expected healthy database, got: %v", err)
	}

	checker.DB = &mockPinger{shouldFail: true}
	if err := checker.Check(context.Background()); err == nil {
		t.Error("expected failing database check")
	}

	if err := (&DatabaseChecker{}).Check(context.Background()); err == nil {
		t.Error("expected error for unconfigured database")
	}
}

func TestRedisChecker(t *testing.T) {
	checker := &RedisChecker{PingFunc: func(ctx context.Context) error { return nil }}
	if checker.Name() != "redis-checker" {
		t.Errorf("unexpected default name %q", checker.Name())
	}
	if err := checker.Check(context.Background()); err != nil {
		t.Errorf("expected healthy redis, got: %v", err)
	}
	if err := (&RedisChecker{}).Check(context.Background()); err == nil {
		t.Error("expected error for unconfigured redis")
	}
}

func TestHTTPChecker(t *testing.T) {
	tests := []struct {
		status  int
		healthy bool
	}{
		{http.StatusOK, true},
		{http.StatusNoContent, true},
		{http.StatusInternalServerError, false},
		{http.StatusNotFound, false},
	}

	for _, tt := range tests {
		var cacheControl string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cacheControl = r.Header.Get("Cache-Control")
			w.WriteHeader(tt.status)
		}))

		err := NewHTTPChecker(srv.URL, nil).Check(context.Background())
		srv.Close()

		if tt.healthy && err != nil {
			t.Errorf("status %d: expected healthy, got %v", tt.status, err)
		}
		if !tt.healthy && err == nil {
			t.Errorf("status %d: expected unhealthy", tt.status)
		}
		if cacheControl != "no-cache, no-store" {
			t.Errorf("status %d: missing no-cache header, got %q", tt.status, cacheControl)
		}
	}
}

func TestHTTPCheckerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if err := NewHTTPChecker(url, nil).Check(context.Background()); err == nil {
		t.Error("expected error for unreachable server")
	}
	if err := (&HTTPChecker{}).Check(context.Background()); err == nil {
		t.Error("expected error for missing url")
	}
}

func TestCustomChecker(t *testing.T) {
	pass := &CustomChecker{Name_: "pass", CheckFunc: func(ctx context.Context) error { return nil }}
	if err := pass.Check(context.Background()); err != nil {
		t.Errorf("expected pass, got %v", err)
	}
	if err := (&CustomChecker{}).Check(context.Background()); err == nil {
		t.Error("expected error without check function")
	}
}
