package formvalidator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		score    int
		level    string
		feedback int
	}{
		{"", 0, "very weak", 5},
		{"abc", 1, "very weak", 4},
		{"abcdefgh", 2, "weak", 3},
		{"Abcdefgh", 3, "fair", 2},
		{"Abcdefg1", 4, "good", 1},
		{"Abcdef1!", 5, "very strong", 0},
	}
	for _, tt := range tests {
		got := ValidatePasswordStrength(tt.password)
		assert.Equal(t, tt.score, got.Score, tt.password)
		assert.Equal(t, tt.level, got.Level, tt.password)
		assert.Len(t, got.Feedback, tt.feedback, tt.password)
	}
}

func TestStringValidators(t *testing.T) {
	assert.True(t, IsAlphabetic("Élodie Dupré"))
	assert.False(t, IsAlphabetic("R2D2"))
	assert.True(t, IsAlphanumeric("Salle 12 à Tunis"))
	assert.False(t, IsAlphanumeric("a-b"))

	assert.True(t, IsValidAddress("1 rue de la Paix"))
	assert.False(t, IsValidAddress("rue"))

	assert.True(t, IsValidFrenchPostalCode("75 001"))
	assert.False(t, IsValidFrenchPostalCode("7500"))

	assert.True(t, MatchesPattern("AB-12", `^[A-Z]{2}-\d+$`))
	assert.False(t, MatchesPattern("x", `(`))

	assert.True(t, IsInList("b", []string{"a", "b"}))
	assert.False(t, IsInList("c", []string{"a", "b"}))

	assert.True(t, IsNotEmpty(" x "))
	assert.False(t, IsNotEmpty("   "))

	assert.True(t, IsValidHelpType("other"))
	assert.True(t, IsValidUrgencyLevel("low"))
	assert.True(t, IsValidContactMethod("email"))
	assert.True(t, IsValidStatus("ferme"))
	assert.False(t, IsValidStatus("closed"))
}
