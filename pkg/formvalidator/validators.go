package formvalidator

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

var (
	nonDigit     = regexp.MustCompile(`\D`)
	alphabetic   = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
	alphanumeric = regexp.MustCompile(`^[a-zA-Z0-9À-ÿ\s]+$`)
	postalCode   = regexp.MustCompile(`^[0-9]{5}$`)
	whitespace   = regexp.MustCompile(`\s`)
	upper        = regexp.MustCompile(`[A-Z]`)
	lower        = regexp.MustCompile(`[a-z]`)
	digit        = regexp.MustCompile(`[0-9]`)
	special      = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// IsValidEmail accepts local@domain.tld with no whitespace and one "@".
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhone requires at least ten digits once everything else is removed.
func IsValidPhone(phone string) bool {
	return len(nonDigit.ReplaceAllString(phone, "")) >= 10
}

func IsValidHelpType(value string) bool      { return slices.Contains(HelpTypes, value) }
func IsValidUrgencyLevel(value string) bool  { return slices.Contains(UrgencyLevels, value) }
func IsValidContactMethod(value string) bool { return slices.Contains(ContactMethods, value) }
func IsValidStatus(value string) bool        { return slices.Contains(Statuses, value) }

// IsInList reports whether value is one of list.
func IsInList(value string, list []string) bool {
	return slices.Contains(list, value)
}

// MatchesPattern compiles pattern and tests value against it. An invalid
// pattern never matches.
func MatchesPattern(value, pattern string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(value)
}

// IsAlphabetic allows Latin letters, Latin-1 accented letters and spaces.
func IsAlphabetic(value string) bool {
	return alphabetic.MatchString(value)
}

func IsAlphanumeric(value string) bool {
	return alphanumeric.MatchString(value)
}

// IsValidAddress only bounds the length: 5 to 200 characters.
func IsValidAddress(value string) bool {
	n := utf8.RuneCountInString(value)
	return n >= 5 && n <= 200
}

// IsValidFrenchPostalCode accepts five digits, ignoring whitespace.
func IsValidFrenchPostalCode(value string) bool {
	return postalCode.MatchString(whitespace.ReplaceAllString(value, ""))
}

func IsNotEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}

type PasswordStrength struct {
	Score    int      `json:"score"`
	Level    string   `json:"level"`
	Feedback []string `json:"feedback"`
}

// ValidatePasswordStrength scores a password from 0 to 5 and lists the
// missing criteria in French.
func ValidatePasswordStrength(password string) PasswordStrength {
	s := PasswordStrength{Feedback: []string{}}

	checks := []struct {
		ok       bool
		feedback string
	}{
		{utf8.RuneCountInString(password) >= 8, "Au moins 8 caractères"},
		{upper.MatchString(password), "Une lettre majuscule"},
		{lower.MatchString(password), "Une lettre minuscule"},
		{digit.MatchString(password), "Un chiffre"},
		{special.MatchString(password), "Un caractère spécial"},
	}
	for _, c := range checks {
		if c.ok {
			s.Score++
		} else {
			s.Feedback = append(s.Feedback, c.feedback)
		}
	}

	switch {
	case s.Score <= 1:
		s.Level = "very weak"
	case s.Score == 2:
		s.Level = "weak"
	case s.Score == 3:
		s.Level = "fair"
	case s.Score == 4:
		s.Level = "good"
	default:
		s.Level = "very strong"
	}
	return s
}
