package submission

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"strings"
	"unicode/utf8"

	"peaceconnect_service/pkg/notify"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const MinDescriptionLength = 10

const (
	MsgDescriptionEmpty    = "Veuillez d'abord décrire votre situation"
	MsgDescriptionTooShort = "La description doit contenir au minimum 10 caractères"
	MsgSuggestionSuccess   = "Suggestions générées avec succès !"
	MsgSuggestionFailed    = "Erreur lors de la génération des suggestions"

	LabelAnalysing = "Analyse en cours..."
	LabelSuggest   = "Obtenir des suggestions IA"
)

var (
	ErrDescriptionEmpty    = errors.New("description is empty")
	ErrDescriptionTooShort = errors.New("description is too short")
)

// Generator turns a description into advice.
type Generator interface {
	Generate(ctx context.Context, input string) (string, error)
}

var panelTemplate = template.Must(template.New("panel").Parse(
	`<div class="alert alert-success"><strong>✅ Analyse terminée</strong></div>` +
		`<div class="suggestion-body"><h3>💡 Recommandations personnalisées :</h3><p>{{.}}</p></div>` +
		`<div class="suggestion-actions"><h4>📋 Actions suggérées :</h4><ul>` +
		`<li>✓ Documenter l'incident avec dates et preuves</li>` +
		`<li>✓ Contacter les services appropriés selon votre situation</li>` +
		`<li>✓ Envisager une médiation si applicable</li>` +
		`<li>✓ Chercher un soutien psychologique si nécessaire</li>` +
		`</ul></div>`))

func panelPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "p", "h3", "h4", "ul", "li", "strong")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("div")
	return p
}

// RenderPanel renders advice as the suggestion panel. The advice is
// escaped and the result sanitized.
func RenderPanel(advice string) (string, error) {
	var buf bytes.Buffer
	if err := panelTemplate.Execute(&buf, advice); err != nil {
		return "", err
	}
	return panelPolicy().Sanitize(buf.String()), nil
}

type SuggesterOption func(*Suggester)

func WithSuggestNotifier(n notify.Notifier) SuggesterOption {
	return func(s *Suggester) { s.notifier = n }
}

func WithSuggestButton(b Button) SuggesterOption {
	return func(s *Suggester) { s.button = b }
}

func WithSpinner(sp Spinner) SuggesterOption {
	return func(s *Suggester) { s.spinner = sp }
}

func WithPanel(p Panel) SuggesterOption {
	return func(s *Suggester) { s.panel = p }
}

func WithSuggestLogger(l *zap.Logger) SuggesterOption {
	return func(s *Suggester) {
		if l != nil {
			s.logger = l
		}
	}
}

// Suggester runs the "AI suggestion" action of the help-request form.
type Suggester struct {
	gen      Generator
	notifier notify.Notifier
	button   Button
	spinner  Spinner
	panel    Panel
	logger   *zap.Logger
}

func NewSuggester(gen Generator, opts ...SuggesterOption) *Suggester {
	s := &Suggester{
		gen:      gen,
		notifier: notify.Multi{},
		button:   nopUI{},
		spinner:  nopUI{},
		panel:    nopUI{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Suggest validates the description locally, asks the generator for advice
// and shows it in the panel. It returns the rendered panel.
func (s *Suggester) Suggest(ctx context.Context, description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		notify.Show(s.notifier, MsgDescriptionEmpty, notify.Warning)
		return "", ErrDescriptionEmpty
	}
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		notify.Show(s.notifier, MsgDescriptionTooShort, notify.Warning)
		return "", ErrDescriptionTooShort
	}

	s.button.SetDisabled(true)
	s.spinner.SetVisible(true)
	s.button.SetLabel(LabelAnalysing)
	defer func() {
		s.button.SetDisabled(false)
		s.spinner.SetVisible(false)
		s.button.SetLabel(LabelSuggest)
	}()

	advice, err := s.gen.Generate(ctx, description)
	if err == nil {
		var html string
		if html, err = RenderPanel(advice); err == nil {
			s.panel.SetHTML(html)
			notify.Show(s.notifier, MsgSuggestionSuccess, notify.Success)
			return html, nil
		}
	}

	s.logger.Error("suggestion generation failed", zap.Error(err))
	notify.Show(s.notifier, MsgSuggestionFailed, notify.Error)
	return "", err
}
