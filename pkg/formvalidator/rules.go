package formvalidator

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Kind names a validation rule. Kinds outside the catalog are accepted and
// always pass.
type Kind string

const (
	KindRequired      Kind = "required"
	KindEmail         Kind = "email"
	KindMinLength     Kind = "minLength"
	KindMaxLength     Kind = "maxLength"
	KindPhone         Kind = "phone"
	KindURL           Kind = "url"
	KindCustom        Kind = "custom"
	KindHelpType      Kind = "helpType"
	KindUrgencyLevel  Kind = "urgencyLevel"
	KindContactMethod Kind = "contactMethod"
	KindStatus        Kind = "status"
)

// unboundedMax is the bound reported by maxLength when none is configured.
const unboundedMax = 999999

var (
	HelpTypes      = []string{"legal", "psychological", "mediation", "emergency", "information", "other"}
	UrgencyLevels  = []string{"low", "medium", "high", "critical"}
	ContactMethods = []string{"email", "phone", "both"}
	Statuses       = []string{"en_attente", "en_cours", "resolu", "ferme"}
)

// Options carries the kind-specific parameters of a rule.
type Options struct {
	Min     int
	Max     int
	Regex   *regexp.Regexp
	Message string
}

// Rule is one registered check. Rules are immutable once added.
type Rule struct {
	Kind    Kind
	Options Options
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	catalogOnce sync.Once
	catalog     *validator.Validate
)

func engineValidator() *validator.Validate {
	catalogOnce.Do(func() {
		catalog = validator.New()
		_ = catalog.RegisterValidation("form_email", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		_ = catalog.RegisterValidation("form_phone", func(fl validator.FieldLevel) bool {
			return IsValidPhone(fl.Field().String())
		})
	})
	return catalog
}

func oneOf(values []string) string {
	return "oneof=" + strings.Join(values, " ")
}

// tag maps a kind to its validator/v10 tag. ok is false for kinds checked
// outside the tag engine.
func (r Rule) tag() (tag string, ok bool) {
	switch r.Kind {
	case KindRequired:
		return "required", true
	case KindEmail:
		return "form_email", true
	case KindMinLength:
		return fmt.Sprintf("min=%d", max(r.Options.Min, 0)), true
	case KindMaxLength:
		if r.Options.Max <= 0 {
			return "", false
		}
		return fmt.Sprintf("max=%d", r.Options.Max), true
	case KindPhone:
		return "form_phone", true
	case KindURL:
		return "url", true
	case KindHelpType:
		return oneOf(HelpTypes), true
	case KindUrgencyLevel:
		return oneOf(UrgencyLevels), true
	case KindContactMethod:
		return oneOf(ContactMethods), true
	case KindStatus:
		return oneOf(Statuses), true
	}
	return "", false
}

// Check reports whether value satisfies the rule. value is expected to be
// trimmed already. An empty value passes every kind except required.
func (r Rule) Check(value string) bool {
	if value == "" && r.Kind != KindRequired {
		return true
	}
	if r.Kind == KindCustom {
		return r.Options.Regex == nil || r.Options.Regex.MatchString(value)
	}
	tag, ok := r.tag()
	if !ok {
		return true
	}
	return engineValidator().Var(value, tag) == nil
}

// Message returns the user-facing text shown when the rule fails.
func (r Rule) Message() string {
	switch r.Kind {
	case KindRequired:
		return "Ce champ est obligatoire"
	case KindEmail:
		return "Veuillez entrer une adresse email valide"
	case KindMinLength:
		return fmt.Sprintf("Minimum %d caractères requis", max(r.Options.Min, 0))
	case KindMaxLength:
		bound := r.Options.Max
		if bound <= 0 {
			bound = unboundedMax
		}
		return fmt.Sprintf("Maximum %d caractères autorisés", bound)
	case KindPhone:
		return "Veuillez entrer un numéro de téléphone valide"
	case KindURL:
		return "Veuillez entrer une URL valide"
	case KindCustom:
		if r.Options.Message != "" {
			return r.Options.Message
		}
		return "Format invalide"
	case KindHelpType:
		return "Type d'aide invalide"
	case KindUrgencyLevel:
		return "Niveau d'urgence invalide"
	case KindContactMethod:
		return "Moyen de contact invalide"
	case KindStatus:
		return "Statut invalide"
	}
	return "Erreur de validation"
}
