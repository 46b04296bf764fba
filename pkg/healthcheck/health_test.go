package healthcheck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func setupTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func setupRouter(h *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.Install(r)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth_SetReady(t *testing.T) {
	h := New(Config{Logger: setupTestLogger()})

	if h.IsReady() {
		t.Error("Health should not be ready by default")
	}

	h.SetReady(true)

	if !h.IsReady() {
		t.Error("Health should be ready after SetReady(true)")
	}
}

func TestHealth_Endpoints(t *testing.T) {
	h := New(Config{Logger: setupTestLogger()})
	r := setupRouter(h)

	if w := get(r, "/livez"); w.Code != http.StatusOK {
		t.Errorf("livez: expected 200, got %d", w.Code)
	}
	if w := get(r, "/readyz"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz before ready: expected 503, got %d", w.Code)
	}
	if w := get(r, "/healthz"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("healthz before ready: expected 503, got %d", w.Code)
	}

	h.SetReady(true)

	if w := get(r, "/readyz"); w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("readyz: expected 200 ok, got %d %q", w.Code, w.Body.String())
	}
	if w := get(r, "/healthz"); w.Code != http.StatusOK {
		t.Errorf("healthz: expected 200, got %d", w.Code)
	}
}

func TestHealth_FailingReadinessCheck(t *testing.T) {
	h := New(Config{})
	h.SetReady(true)
	h.AddReadinessCheck(&CustomChecker{
		Name_: "db",
		CheckFunc: func(ctx context.Context) error {
			return errors.New("connection refused")
		},
	})
	r := setupRouter(h)

	if w := get(r, "/livez"); w.Code != http.StatusOK {
		t.Errorf("livez should ignore readiness checks, got %d", w.Code)
	}
	w := get(r, "/readyz")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}

	err := h.Run(context.Background(), ReadinessCheck)
	if err == nil || err.Error() != "db: connection refused" {
		t.Errorf("unexpected error: %v", err)
	}
}
