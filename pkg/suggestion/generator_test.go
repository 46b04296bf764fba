package suggestion

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Je subis un harcèlement au travail", Keywords[1].Advice},
		{"VIOLENCE dans mon quartier", Keywords[0].Advice},
		{"HARCÈLEMENT répété", Keywords[1].Advice},
		{"Victime de discrimination à l'embauche", Keywords[2].Advice},
		{"J'ai besoin d'aide", Keywords[3].Advice},
		{"Un conflit avec mon voisin", Keywords[4].Advice},
		// order decides when several keywords are present
		{"conflit et violence", Keywords[0].Advice},
		{"Je ne sais pas quoi faire", Fallback},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Match(tt.input), tt.input)
	}
}

func TestMatchDecomposedAccent(t *testing.T) {
	// "harcèlement" with a combining grave accent
	assert.Equal(t, Keywords[1].Advice, Match("harce\u0300lement"))
}

func TestGenerateWaitsForLatency(t *testing.T) {
	clock := clockwork.NewFakeClock()
	g := New(WithClock(clock))

	type result struct {
		advice string
		err    error
	}
	done := make(chan result, 1)
	go func() {
		advice, err := g.Generate(context.Background(), "Je subis un harcèlement au travail")
		done <- result{advice, err}
	}()

	clock.BlockUntil(1)
	select {
	case <-done:
		t.Fatal("generated before the latency elapsed")
	default:
	}

	clock.Advance(999 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("generated before the latency elapsed")
	case <-time.After(20 * time.Millisecond):
	}

	clock.Advance(time.Millisecond)
	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.Equal(t, "Pour le harcèlement, documentez tous les incidents avec dates et preuves. Contactez un conseiller juridique si nécessaire.", r.advice)
	case <-time.After(time.Second):
		t.Fatal("generate did not return after the latency")
	}
}

func TestGenerateCancelled(t *testing.T) {
	clock := clockwork.NewFakeClock()
	g := New(WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := g.Generate(ctx, "violence")
		done <- err
	}()

	clock.BlockUntil(1)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("generate ignored cancellation")
	}
}

func TestGenerateWithoutLatency(t *testing.T) {
	g := New(WithLatency(0))

	advice, err := g.Generate(context.Background(), "rien de précis")
	require.NoError(t, err)
	assert.Equal(t, Fallback, advice)
}
