package service

import (
	"strconv"
	"strings"
	"time"

	"peaceconnect_service/pkg/utils"
)

// Fields is a submitted record: form values or a flat JSON object, keyed by
// column name.
type Fields map[string]string

// Get returns the trimmed value of key.
func (f Fields) Get(key string) string {
	return strings.TrimSpace(f[key])
}

// Has reports whether key was submitted, even empty.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// optional returns nil for an empty value, else the truncated value.
func optional(s string, n int) *string {
	if s == "" {
		return nil
	}
	v := truncate(s, n)
	return &v
}

func orDefault(s, def string, n int) string {
	if s == "" {
		return def
	}
	return truncate(s, n)
}

func parseID(field, s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, invalid(field, "Le champ \"%s\" doit être un identifiant valide.", field)
	}
	return uint(id), nil
}

// optionalID returns nil for an empty or zero value.
func optionalID(field, s string) (*uint, error) {
	if s == "" || s == "0" {
		return nil, nil
	}
	id, err := parseID(field, s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDate(field, s string) (time.Time, error) {
	t, err := utils.ParseDateTime(s)
	if err != nil {
		return time.Time{}, invalid(field, "Le champ \"%s\" doit être une date valide.", field)
	}
	return t, nil
}

func optionalDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(field, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseBool accepts the checkbox value "on" besides strconv's spellings.
// Anything else is false.
func parseBool(s string) bool {
	if strings.EqualFold(s, "on") {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
