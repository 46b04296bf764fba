package submission

import (
	"context"
	"errors"
	"testing"

	"peaceconnect_service/pkg/notify"
	"peaceconnect_service/pkg/suggestion"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	calls  int
	advice string
	err    error
}

func (g *fakeGenerator) Generate(ctx context.Context, input string) (string, error) {
	g.calls++
	return g.advice, g.err
}

type fakeSpinner struct{ visible bool }

func (s *fakeSpinner) SetVisible(v bool) { s.visible = v }

type fakePanel struct{ html string }

func (p *fakePanel) SetHTML(h string) { p.html = h }

func TestSuggestRejectsShortDescriptions(t *testing.T) {
	tests := []struct {
		input string
		msg   string
		err   error
	}{
		{"", MsgDescriptionEmpty, ErrDescriptionEmpty},
		{"    ", MsgDescriptionEmpty, ErrDescriptionEmpty},
		{"trop court", "", nil},
		{"court", MsgDescriptionTooShort, ErrDescriptionTooShort},
		{"  123456789  ", MsgDescriptionTooShort, ErrDescriptionTooShort},
	}
	for _, tt := range tests {
		gen := &fakeGenerator{advice: "ok"}
		rec := &notify.Recorder{}
		s := NewSuggester(gen, WithSuggestNotifier(rec))

		_, err := s.Suggest(context.Background(), tt.input)

		if tt.err == nil {
			assert.NoError(t, err, tt.input)
			assert.Equal(t, 1, gen.calls, tt.input)
			continue
		}
		assert.ErrorIs(t, err, tt.err, tt.input)
		assert.Equal(t, 0, gen.calls, tt.input)
		assert.Equal(t, notify.Toast{Message: tt.msg, Level: notify.Warning, Duration: notify.DefaultDuration}, rec.Last())
	}
}

func TestSuggestSuccess(t *testing.T) {
	rec := &notify.Recorder{}
	btn := &fakeButton{}
	spinner := &fakeSpinner{}
	panel := &fakePanel{}
	s := NewSuggester(suggestion.New(suggestion.WithLatency(0)),
		WithSuggestNotifier(rec),
		WithSuggestButton(btn),
		WithSpinner(spinner),
		WithPanel(panel),
	)

	html, err := s.Suggest(context.Background(), "Je subis un harcèlement au travail")
	require.NoError(t, err)

	assert.Equal(t, html, panel.html)
	assert.Contains(t, html, "documentez tous les incidents avec dates et preuves")
	assert.Equal(t, MsgSuggestionSuccess, rec.Last().Message)
	assert.Equal(t, []string{"disabled", LabelAnalysing, "enabled", LabelSuggest}, btn.history)
	assert.False(t, spinner.visible)
}

func TestSuggestFailureRestoresButton(t *testing.T) {
	rec := &notify.Recorder{}
	btn := &fakeButton{}
	panel := &fakePanel{}
	s := NewSuggester(&fakeGenerator{err: errors.New("boom")},
		WithSuggestNotifier(rec),
		WithSuggestButton(btn),
		WithPanel(panel),
	)

	_, err := s.Suggest(context.Background(), "Un long texte de description")
	assert.Error(t, err)

	assert.Equal(t, notify.Toast{Message: MsgSuggestionFailed, Level: notify.Error, Duration: notify.DefaultDuration}, rec.Last())
	assert.False(t, btn.disabled)
	assert.Equal(t, LabelSuggest, btn.label)
	assert.Empty(t, panel.html)
}

func TestRenderPanelGolden(t *testing.T) {
	html, err := RenderPanel(suggestion.Match("Un conflit avec mon voisin"))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "suggestion_panel", []byte(html))
}

func TestRenderPanelEscapesAdvice(t *testing.T) {
	html, err := RenderPanel(`<script>alert("x")</script><img src=x onerror=alert(1)>`)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "<img")
	assert.Contains(t, html, "&lt;script&gt;")
}
