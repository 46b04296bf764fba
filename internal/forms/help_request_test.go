package forms

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func validValues() url.Values {
	return url.Values{
		"help_type":      {"mediation"},
		"urgency_level":  {"high"},
		"situation":      {"  Conflit persistant avec un voisin  "},
		"location":       {"Lyon"},
		"contact_method": {"email"},
	}
}

func TestValidateHelpRequestAccepts(t *testing.T) {
	env, errs, ok := ValidateHelpRequest(validValues(), zap.NewNop())

	assert.True(t, ok)
	assert.Empty(t, errs)
	assert.Equal(t, HelpRequestFields, env.Names)
	assert.Equal(t, "Conflit persistant avec un voisin", env.Get("situation"))
}

func TestValidateHelpRequestRejects(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		value  string
		expect []string
	}{
		{"unknown help type", "help_type", "unknown", []string{"Type d'aide invalide"}},
		{"missing help type", "help_type", "", []string{"Ce champ est obligatoire"}},
		{"bad urgency", "urgency_level", "urgent", []string{"Niveau d'urgence invalide"}},
		{"short situation", "situation", "court", []string{"Minimum 10 caractères requis"}},
		{"long situation", "situation", strings.Repeat("a", 5001), []string{"Maximum 5000 caractères autorisés"}},
		{"long location", "location", strings.Repeat("b", 101), []string{"Maximum 100 caractères autorisés"}},
		{"bad contact", "contact_method", "pigeon", []string{"Moyen de contact invalide"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validValues()
			values.Set(tt.field, tt.value)

			_, errs, ok := ValidateHelpRequest(values, zap.NewNop())

			assert.False(t, ok)
			assert.Equal(t, map[string][]string{tt.field: tt.expect}, errs)
		})
	}
}

func TestLocationIsOptional(t *testing.T) {
	values := validValues()
	values.Del("location")

	_, errs, ok := ValidateHelpRequest(values, zap.NewNop())

	assert.True(t, ok)
	assert.Empty(t, errs)
}
