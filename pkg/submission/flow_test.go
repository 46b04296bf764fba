package submission

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"peaceconnect_service/pkg/formvalidator"
	"peaceconnect_service/pkg/notify"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type fakeButton struct {
	mu       sync.Mutex
	disabled bool
	label    string
	history  []string
}

func (b *fakeButton) SetDisabled(d bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disabled = d
	if d {
		b.history = append(b.history, "disabled")
	} else {
		b.history = append(b.history, "enabled")
	}
}

func (b *fakeButton) SetLabel(l string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.label = l
	b.history = append(b.history, l)
}

type chanNavigator chan string

func (c chanNavigator) Navigate(url string) { c <- url }

type countingResetter struct{ n int }

func (r *countingResetter) Reset() { r.n++ }

type staticHealth struct{ err error }

func (h staticHealth) Check(ctx context.Context) error { return h.err }

type FlowTestSuite struct {
	suite.Suite

	healthStatus int
	postStatus   int
	postBody     string
	posts        atomic.Int32
	lastBody     string
	lastType     string
	server       *httptest.Server

	clock     clockwork.FakeClock
	notifier  *notify.Recorder
	button    *fakeButton
	navigator chanNavigator
	resetter  *countingResetter
	flow      *Flow
}

func (s *FlowTestSuite) SetupTest() {
	s.healthStatus = http.StatusOK
	s.postStatus = http.StatusOK
	s.postBody = `{"success":true,"id":42}`
	s.posts.Store(0)

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(s.healthStatus)
			return
		}
		s.posts.Add(1)
		b, _ := io.ReadAll(r.Body)
		s.lastBody = string(b)
		s.lastType = r.Header.Get("Content-Type")
		w.WriteHeader(s.postStatus)
		_, _ = w.Write([]byte(s.postBody))
	}))

	s.clock = clockwork.NewFakeClock()
	s.notifier = &notify.Recorder{}
	s.button = &fakeButton{}
	s.navigator = make(chanNavigator, 1)
	s.resetter = &countingResetter{}
	s.flow = New(Config{Endpoint: s.server.URL + "/api/help-request"}, nil,
		WithClock(s.clock),
		WithNotifier(s.notifier),
		WithButton(s.button),
		WithNavigator(s.navigator),
		WithResetter(s.resetter),
	)
}

func (s *FlowTestSuite) TearDownTest() {
	s.server.Close()
}

func envelope() formvalidator.Envelope {
	return formvalidator.Envelope{
		Names: []string{"help_type", "urgency_level", "situation"},
		Values: map[string]string{
			"help_type":     "mediation",
			"urgency_level": "high",
			"situation":     "Un conflit avec mon voisin",
		},
	}
}

func (s *FlowTestSuite) expectIdleButton() {
	s.False(s.button.disabled)
	s.Equal(LabelIdle, s.button.label)
}

func (s *FlowTestSuite) TestServerDownSkipsPost() {
	s.healthStatus = http.StatusInternalServerError

	outcome := s.flow.Submit(context.Background(), envelope())

	s.Equal(OutcomeServerDown, outcome)
	s.Equal(int32(0), s.posts.Load())
	s.Equal(notify.Toast{Message: MsgServerDown, Level: notify.Error, Duration: notify.DefaultDuration}, s.notifier.Last())
	s.Empty(s.button.history)
}

func (s *FlowTestSuite) TestInvalidJSON() {
	s.postBody = "not json"

	outcome := s.flow.Submit(context.Background(), envelope())

	s.Equal(OutcomeInvalidResponse, outcome)
	s.Equal(MsgInvalidResponse, s.notifier.Last().Message)
	s.Equal(0, s.resetter.n)
	s.expectIdleButton()
}

func (s *FlowTestSuite) TestSuccessResetsAndRedirects() {
	outcome := s.flow.Submit(context.Background(), envelope())

	s.Equal(OutcomeSuccess, outcome)
	s.Equal(int32(1), s.posts.Load())
	s.Equal("help_type=mediation&urgency_level=high&situation=Un+conflit+avec+mon+voisin", s.lastBody)
	s.Equal("application/x-www-form-urlencoded", s.lastType)
	s.Equal(notify.Toast{Message: MsgSuccess, Level: notify.Success, Duration: notify.DefaultDuration}, s.notifier.Last())
	s.Equal(1, s.resetter.n)
	s.Equal([]string{"disabled", LabelBusy, "enabled", LabelIdle}, s.button.history)

	s.clock.Advance(1999 * time.Millisecond)
	select {
	case url := <-s.navigator:
		s.Failf("redirect too early", "navigated to %s", url)
	case <-time.After(50 * time.Millisecond):
	}

	s.clock.Advance(time.Millisecond)
	select {
	case url := <-s.navigator:
		s.Equal("index.html", url)
	case <-time.After(time.Second):
		s.Fail("no redirect after 2000ms")
	}
}

func (s *FlowTestSuite) TestCancelRedirect() {
	s.Require().Equal(OutcomeSuccess, s.flow.Submit(context.Background(), envelope()))
	s.True(s.flow.CancelRedirect())

	s.clock.Advance(5 * time.Second)
	select {
	case url := <-s.navigator:
		s.Failf("redirect after cancel", "navigated to %s", url)
	case <-time.After(50 * time.Millisecond):
	}
	s.False(s.flow.CancelRedirect())
}

func (s *FlowTestSuite) TestRejectedWithServerMessage() {
	s.postStatus = http.StatusBadRequest
	s.postBody = `{"success":false,"error":"Champs obligatoires manquants"}`

	outcome := s.flow.Submit(context.Background(), envelope())

	s.Equal(OutcomeRejected, outcome)
	s.Equal("Champs obligatoires manquants", s.notifier.Last().Message)
	s.Equal(0, s.resetter.n)
	s.expectIdleButton()
}

func (s *FlowTestSuite) TestRejectedFallbackMessage() {
	s.postBody = `{"success":false}`

	s.Equal(OutcomeRejected, s.flow.Submit(context.Background(), envelope()))
	s.Equal(MsgRejected, s.notifier.Last().Message)
}

func (s *FlowTestSuite) TestNetworkError() {
	s.server.Close()
	flow := New(Config{Endpoint: s.server.URL}, nil,
		WithHealthChecker(staticHealth{}),
		WithNotifier(s.notifier),
		WithButton(s.button),
	)

	s.Equal(OutcomeNetworkError, flow.Submit(context.Background(), envelope()))
	s.Equal(MsgNetworkError, s.notifier.Last().Message)
	s.expectIdleButton()
}

func (s *FlowTestSuite) TestWireWithEngine() {
	form := formvalidator.NewForm("helpRequestForm",
		&formvalidator.Control{Name: "help_type"},
		&formvalidator.Control{Name: "situation", Tag: "textarea"},
	)
	engine := formvalidator.Attach(form)
	engine.AddRule("help_type", formvalidator.KindRequired).
		AddRule("situation", formvalidator.KindMinLength, formvalidator.Options{Min: 10})

	flow := New(Config{Endpoint: s.server.URL}, nil,
		WithClock(s.clock),
		WithNotifier(s.notifier),
	)
	flow.Wire(context.Background(), engine)

	engine.Submit()
	s.Equal(MsgFixErrors, s.notifier.Last().Message)
	s.Equal(int32(0), s.posts.Load())

	engine.Input("help_type", "legal")
	engine.Input("situation", "Litige avec mon employeur")
	engine.Submit()

	s.Equal(int32(1), s.posts.Load())
	s.Equal("help_type=legal&situation=Litige+avec+mon+employeur", s.lastBody)
	s.Equal(MsgSuccess, s.notifier.Last().Message)
	// the engine was reset
	s.Equal("", engine.Data().Get("help_type"))
}

func TestFlowTestSuite(t *testing.T) {
	suite.Run(t, new(FlowTestSuite))
}

func TestParseEnvelope(t *testing.T) {
	env, ok := parseEnvelope([]byte(`{"success":true,"id":42}`))
	require.True(t, ok)
	assert.True(t, env.Success)
	assert.JSONEq(t, "42", string(env.Data["id"]))

	env, ok = parseEnvelope([]byte(`{"success":"yes","error":"nope"}`))
	require.True(t, ok)
	assert.False(t, env.Success)
	assert.Equal(t, "nope", env.Error)

	for _, body := range []string{"not json", "[1,2]", "null", "42", ""} {
		_, ok := parseEnvelope([]byte(body))
		assert.False(t, ok, body)
	}
}

func TestDefaults(t *testing.T) {
	f := New(Config{Endpoint: "http://localhost/api/help-request"}, nil)
	assert.Equal(t, "http://localhost/api/help-request", f.cfg.HealthEndpoint)
	assert.Equal(t, DefaultRedirectURL, f.cfg.RedirectURL)
	assert.Equal(t, DefaultRedirectDelay, f.cfg.RedirectDelay)
	assert.Equal(t, "success", OutcomeSuccess.String())
}
