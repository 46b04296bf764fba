// Package submission posts a validated form envelope to a remote endpoint
// and reports the outcome through toasts, a submit button and a delayed
// redirect.
package submission

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"peaceconnect_service/pkg/formvalidator"
	"peaceconnect_service/pkg/healthcheck"
	"peaceconnect_service/pkg/httpClient"
	"peaceconnect_service/pkg/notify"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	DefaultRedirectURL   = "index.html"
	DefaultRedirectDelay = 2000 * time.Millisecond
)

const (
	MsgServerDown      = "Serveur indisponible. Vérifiez que le serveur est lancé."
	MsgInvalidResponse = "Erreur serveur : réponse invalide"
	MsgSuccess         = "Demande d'aide envoyée avec succès !"
	MsgRejected        = "Erreur lors de l'envoi"
	MsgNetworkError    = "Impossible de contacter le serveur"
	MsgFixErrors       = "Veuillez corriger les erreurs dans le formulaire"

	LabelBusy = "Envoi en cours..."
	LabelIdle = "Envoyer la demande"
)

// Outcome is the terminal path taken by Submit.
type Outcome int

const (
	OutcomeServerDown Outcome = iota
	OutcomeInvalidResponse
	OutcomeSuccess
	OutcomeRejected
	OutcomeNetworkError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeServerDown:
		return "server_down"
	case OutcomeInvalidResponse:
		return "invalid_response"
	case OutcomeSuccess:
		return "success"
	case OutcomeRejected:
		return "rejected"
	case OutcomeNetworkError:
		return "network_error"
	}
	return "unknown"
}

type Config struct {
	Endpoint string
	// HealthEndpoint defaults to Endpoint.
	HealthEndpoint string
	RedirectURL    string
	RedirectDelay  time.Duration
}

type HealthChecker interface {
	Check(ctx context.Context) error
}

// ResponseEnvelope is the JSON body returned by the endpoint. Data holds
// every member, success and error included.
type ResponseEnvelope struct {
	Success bool
	Error   string
	Data    map[string]json.RawMessage
}

// parseEnvelope accepts any JSON object. Non-object bodies are a contract
// violation. A success member that is not the boolean true counts as false.
func parseEnvelope(body []byte) (*ResponseEnvelope, bool) {
	var data map[string]json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil || data == nil {
		return nil, false
	}
	env := &ResponseEnvelope{Data: data}
	if raw, ok := data["success"]; ok {
		_ = json.Unmarshal(raw, &env.Success)
	}
	if raw, ok := data["error"]; ok {
		_ = json.Unmarshal(raw, &env.Error)
	}
	return env, true
}

type Option func(*Flow)

func WithHealthChecker(h HealthChecker) Option {
	return func(f *Flow) { f.health = h }
}

func WithNotifier(n notify.Notifier) Option {
	return func(f *Flow) { f.notifier = n }
}

func WithButton(b Button) Option {
	return func(f *Flow) { f.button = b }
}

func WithNavigator(n Navigator) Option {
	return func(f *Flow) { f.navigator = n }
}

func WithResetter(r Resetter) Option {
	return func(f *Flow) { f.resetter = r }
}

func WithClock(c clockwork.Clock) Option {
	return func(f *Flow) { f.clock = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(f *Flow) {
		if l != nil {
			f.logger = l
		}
	}
}

// Flow drives one form's submissions. Concurrent calls to Submit are not
// deduplicated; the disabled button is the only guard.
type Flow struct {
	cfg       Config
	client    httpClient.HTTPClient
	health    HealthChecker
	notifier  notify.Notifier
	button    Button
	navigator Navigator
	resetter  Resetter
	clock     clockwork.Clock
	logger    *zap.Logger

	mu       sync.Mutex
	redirect clockwork.Timer
}

func New(cfg Config, client httpClient.HTTPClient, opts ...Option) *Flow {
	if cfg.HealthEndpoint == "" {
		cfg.HealthEndpoint = cfg.Endpoint
	}
	if cfg.RedirectURL == "" {
		cfg.RedirectURL = DefaultRedirectURL
	}
	if cfg.RedirectDelay <= 0 {
		cfg.RedirectDelay = DefaultRedirectDelay
	}
	if client == nil {
		client = httpClient.NewClient()
	}

	f := &Flow{
		cfg:       cfg,
		client:    client,
		notifier:  notify.Multi{},
		button:    nopUI{},
		navigator: nopUI{},
		resetter:  nopUI{},
		clock:     clockwork.NewRealClock(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.health == nil {
		f.health = healthcheck.NewHTTPChecker(cfg.HealthEndpoint, client)
	}
	return f
}

// Wire makes f the success listener of engine and shows a toast when the
// engine rejects a submission. The engine becomes the resetter unless one
// was configured.
func (f *Flow) Wire(ctx context.Context, engine *formvalidator.Engine) {
	if _, ok := f.resetter.(nopUI); ok {
		f.resetter = engine
	}
	engine.OnSuccess(func(env formvalidator.Envelope) {
		f.Submit(ctx, env)
	})
	engine.OnInvalid(func() {
		notify.Show(f.notifier, MsgFixErrors, notify.Error)
	})
}

// Submit health-checks the endpoint, posts env form-encoded and reports
// the result. It never returns an error; the Outcome names the path taken.
func (f *Flow) Submit(ctx context.Context, env formvalidator.Envelope) Outcome {
	ctx, traceID := httpClient.EnsureTraceID(ctx)
	log := f.logger.With(zap.String("trace_id", traceID))

	if err := f.health.Check(ctx); err != nil {
		log.Warn("endpoint unavailable", zap.String("endpoint", f.cfg.HealthEndpoint), zap.Error(err))
		notify.Show(f.notifier, MsgServerDown, notify.Error)
		return OutcomeServerDown
	}

	f.button.SetDisabled(true)
	f.button.SetLabel(LabelBusy)
	defer func() {
		f.button.SetDisabled(false)
		f.button.SetLabel(LabelIdle)
	}()

	resp, err := f.client.PostForm(ctx, f.cfg.Endpoint, env.Encode(), nil)
	if err != nil {
		log.Error("submission failed", zap.String("endpoint", f.cfg.Endpoint), zap.Error(err))
		notify.Show(f.notifier, MsgNetworkError, notify.Error)
		return OutcomeNetworkError
	}

	result, ok := parseEnvelope(resp.Body)
	if !ok {
		log.Error("non-JSON response",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", resp.Body))
		notify.Show(f.notifier, MsgInvalidResponse, notify.Error)
		return OutcomeInvalidResponse
	}

	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = MsgRejected
		}
		log.Error("submission rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", resp.Body))
		notify.Show(f.notifier, msg, notify.Error)
		return OutcomeRejected
	}

	notify.Show(f.notifier, MsgSuccess, notify.Success)
	f.resetter.Reset()
	f.scheduleRedirect()
	log.Info("submission accepted", zap.Duration("duration", resp.Duration))
	return OutcomeSuccess
}

func (f *Flow) scheduleRedirect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.redirect != nil {
		f.redirect.Stop()
	}
	target := f.cfg.RedirectURL
	f.redirect = f.clock.AfterFunc(f.cfg.RedirectDelay, func() {
		f.navigator.Navigate(target)
	})
}

// CancelRedirect stops a pending redirect. It reports whether one was
// pending.
func (f *Flow) CancelRedirect() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.redirect == nil {
		return false
	}
	stopped := f.redirect.Stop()
	f.redirect = nil
	return stopped
}
