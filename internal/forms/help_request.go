// Package forms holds the rule sets shared by the help-request client and
// the server endpoint.
package forms

import (
	"net/url"

	"peaceconnect_service/pkg/formvalidator"

	"go.uber.org/zap"
)

const HelpRequestFormID = "helpRequestForm"

// HelpRequestFields are the help-request controls in document order.
var HelpRequestFields = []string{
	"help_type",
	"urgency_level",
	"situation",
	"location",
	"contact_method",
}

// HelpRequestRules registers the help-request rule set on e.
func HelpRequestRules(e *formvalidator.Engine) *formvalidator.Engine {
	return e.
		AddRule("help_type", formvalidator.KindRequired).
		AddRule("help_type", formvalidator.KindHelpType).
		AddRule("urgency_level", formvalidator.KindRequired).
		AddRule("urgency_level", formvalidator.KindUrgencyLevel).
		AddRule("situation", formvalidator.KindRequired).
		AddRule("situation", formvalidator.KindMinLength, formvalidator.Options{Min: 10}).
		AddRule("situation", formvalidator.KindMaxLength, formvalidator.Options{Max: 5000}).
		AddRule("location", formvalidator.KindMaxLength, formvalidator.Options{Max: 100}).
		AddRule("contact_method", formvalidator.KindRequired).
		AddRule("contact_method", formvalidator.KindContactMethod)
}

// NewHelpRequestEngine attaches the help-request rules to values.
func NewHelpRequestEngine(values url.Values, logger *zap.Logger) *formvalidator.Engine {
	form := formvalidator.FormFromValues(HelpRequestFields, values)
	form.ID = HelpRequestFormID
	return HelpRequestRules(formvalidator.Attach(form, formvalidator.WithLogger(logger)))
}

// ValidateHelpRequest runs the rule set over posted values. errs holds the
// failing fields only.
func ValidateHelpRequest(values url.Values, logger *zap.Logger) (env formvalidator.Envelope, errs map[string][]string, ok bool) {
	engine := NewHelpRequestEngine(values, logger)
	ok = engine.ValidateForm()
	return engine.Data(), engine.AllErrors(), ok
}
