package healthcheck

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Checker returns nil when the dependency it watches is healthy.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type CheckType int

const (
	LivenessCheck CheckType = iota
	ReadinessCheck
)

// Manager groups liveness and readiness checkers and serves them as
// /livez, /readyz and /healthz.
type Manager struct {
	readyState atomic.Bool
	checkers   map[CheckType][]Checker
	logger     *zap.Logger
	mu         sync.RWMutex
}

type Config struct {
	Logger *zap.Logger
}

func New(config Config) *Manager {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		checkers: make(map[CheckType][]Checker),
		logger:   logger.With(zap.String("component", "health_manager")),
	}

	m.AddLivenessCheck(&PingChecker{})
	m.AddReadinessCheck(&ReadinessStateChecker{manager: m})

	return m
}

func (m *Manager) AddChecker(checkType CheckType, checker Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Debug("health check added",
		zap.String("checker", checker.Name()),
		zap.Int("type", int(checkType)))

	m.checkers[checkType] = append(m.checkers[checkType], checker)
}

func (m *Manager) AddLivenessCheck(checker Checker) {
	m.AddChecker(LivenessCheck, checker)
}

func (m *Manager) AddReadinessCheck(checker Checker) {
	m.AddChecker(ReadinessCheck, checker)
}

func (m *Manager) SetReady(ready bool) {
	if m.readyState.Swap(ready) != ready {
		m.logger.Info("readiness changed", zap.Bool("ready", ready))
	}
}

func (m *Manager) IsReady() bool {
	return m.readyState.Load()
}

// Run executes the checkers of the given types in order and stops at the
// first failure.
func (m *Manager) Run(ctx context.Context, types ...CheckType) error {
	m.mu.RLock()
	var checkers []Checker
	for _, t := range types {
		checkers = append(checkers, m.checkers[t]...)
	}
	m.mu.RUnlock()

	for _, checker := range checkers {
		if err := checker.Check(ctx); err != nil {
			m.logger.Warn("health check failed",
				zap.String("checker", checker.Name()),
				zap.Error(err))
			return fmt.Errorf("%s: %w", checker.Name(), err)
		}
	}
	return nil
}

func (m *Manager) handler(types ...CheckType) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.Run(c.Request.Context(), types...); err != nil {
			c.String(http.StatusServiceUnavailable, "unhealthy: %v\n", err)
			return
		}
		c.String(http.StatusOK, "ok")
	}
}

// Install registers /livez, /readyz and /healthz on r.
func (m *Manager) Install(r gin.IRoutes) {
	r.GET("/livez", m.handler(LivenessCheck))
	r.GET("/readyz", m.handler(ReadinessCheck))
	r.GET("/healthz", m.handler(LivenessCheck, ReadinessCheck))
}

type ReadinessStateChecker struct {
	manager *Manager
}

func (r *ReadinessStateChecker) Name() string {
	return "readiness-state"
}

func (r *ReadinessStateChecker) Check(ctx context.Context) error {
	if !r.manager.IsReady() {
		return fmt.Errorf("service not ready")
	}
	return nil
}

type PingChecker struct{}

func (p *PingChecker) Name() string {
	return "ping"
}

func (p *PingChecker) Check(ctx context.Context) error {
	return nil
}
