// Package suggestion produces canned advice for a help-request description.
// It stands in for a remote model: a fixed latency followed by keyword
// matching against a small table.
package suggestion

import (
	"context"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

const DefaultLatency = 1000 * time.Millisecond

// Fallback is returned when no keyword matches.
const Fallback = "Je vous recommande de remplir le formulaire avec le maximum de détails. Un conseiller vous contactera dans les plus brefs délais pour vous accompagner."

type Keyword struct {
	Word   string
	Advice string
}

// Keywords are matched in this order; the first hit wins.
var Keywords = []Keyword{
	{"violence", "Je recommande de contacter immédiatement les services d'urgence (17) et de signaler l'incident sur la plateforme."},
	{"harcèlement", "Pour le harcèlement, documentez tous les incidents avec dates et preuves. Contactez un conseiller juridique si nécessaire."},
	{"discrimination", "La discrimination est illégale. Rassemblez des preuves et contactez le Défenseur des droits."},
	{"aide", "Plusieurs ressources sont disponibles : assistance juridique, soutien psychologique, et médiation communautaire."},
	{"conflit", "Pour résoudre un conflit, je suggère de commencer par une médiation avec un tiers neutre."},
}

func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Match returns the advice for the first keyword contained in input,
// ignoring case, or Fallback.
func Match(input string) string {
	folded := fold(input)
	for _, k := range Keywords {
		if strings.Contains(folded, fold(k.Word)) {
			return k.Advice
		}
	}
	return Fallback
}

type Option func(*Generator)

func WithClock(c clockwork.Clock) Option {
	return func(g *Generator) { g.clock = c }
}

// WithLatency overrides the simulated delay. Zero disables it.
func WithLatency(d time.Duration) Option {
	return func(g *Generator) { g.latency = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

type Generator struct {
	clock   clockwork.Clock
	latency time.Duration
	logger  *zap.Logger
}

func New(opts ...Option) *Generator {
	g := &Generator{
		clock:   clockwork.NewRealClock(),
		latency: DefaultLatency,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate waits for the configured latency and returns the matching
// advice. It returns ctx.Err() if the context ends first.
func (g *Generator) Generate(ctx context.Context, input string) (string, error) {
	if g.latency > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-g.clock.After(g.latency):
		}
	}

	advice := Match(input)
	g.logger.Debug("suggestion generated",
		zap.Int("input_len", len(input)),
		zap.Bool("fallback", advice == Fallback),
	)
	return advice, nil
}
