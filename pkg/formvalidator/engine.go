// Package formvalidator attaches declarative validation rules to the named
// controls of a form and gates a success signal behind whole-form validity.
//
// Fields are kept in document order. When two controls share a name the
// field keeps the position of the first one and binds to the last one.
//
// An Engine is not safe for concurrent use.
package formvalidator

import (
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// FieldState tracks whether a field has been validated and with what result.
type FieldState int

const (
	Untouched FieldState = iota
	TouchedValid
	TouchedInvalid
)

func (s FieldState) String() string {
	switch s {
	case TouchedValid:
		return "touched-valid"
	case TouchedInvalid:
		return "touched-invalid"
	default:
		return "untouched"
	}
}

// FieldUI is the visible error state of a field: the error marker on the
// control and the error text beside it.
type FieldUI struct {
	Marked    bool
	Shown     bool
	ErrorText string
}

type field struct {
	name    string
	control *Control
	rules   []Rule
	value   string
	state   FieldState
	ui      FieldUI
}

// Envelope is the snapshot of trimmed field values handed to listeners.
type Envelope struct {
	Names  []string
	Values map[string]string
}

func (e Envelope) Get(name string) string {
	return e.Values[name]
}

// Form returns the envelope as url.Values.
func (e Envelope) Form() url.Values {
	v := make(url.Values, len(e.Names))
	for _, name := range e.Names {
		v.Set(name, e.Values[name])
	}
	return v
}

// Encode form-encodes the envelope keeping field order.
func (e Envelope) Encode() string {
	var b strings.Builder
	for i, name := range e.Names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(e.Values[name]))
	}
	return b.String()
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

type Engine struct {
	form      *Form
	fields    map[string]*field
	order     []string
	errors    map[string][]string
	onSuccess []func(Envelope)
	onInvalid []func()
	logger    *zap.Logger
}

// Attach scans form for its controls. A nil form yields an inert engine.
func Attach(form *Form, opts ...Option) *Engine {
	e := &Engine{
		form:   form,
		fields: make(map[string]*field),
		errors: make(map[string][]string),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if form == nil {
		e.logger.Debug("attach called without a form")
		return e
	}

	for _, c := range form.Controls {
		if f, ok := e.fields[c.Name]; ok {
			f.control = c
			continue
		}
		e.fields[c.Name] = &field{name: c.Name, control: c}
		e.order = append(e.order, c.Name)
	}
	return e
}

// AddRule appends a rule to the named field. Unknown fields are ignored.
func (e *Engine) AddRule(name string, kind Kind, opts ...Options) *Engine {
	f, ok := e.fields[name]
	if !ok {
		e.logger.Debug("rule ignored for unknown field",
			zap.String("field", name),
			zap.String("kind", string(kind)),
		)
		return e
	}
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	f.rules = append(f.rules, Rule{Kind: kind, Options: o})
	return e
}

func (e *Engine) HasField(name string) bool {
	_, ok := e.fields[name]
	return ok
}

// Fields returns the field names in iteration order.
func (e *Engine) Fields() []string {
	return append([]string(nil), e.order...)
}

func (e *Engine) Rules(name string) []Rule {
	f, ok := e.fields[name]
	if !ok {
		return nil
	}
	return append([]Rule(nil), f.rules...)
}

// ValidateField evaluates every rule of the field against its trimmed value
// and then updates the field's error state and UI in one step. Unknown
// fields are valid.
func (e *Engine) ValidateField(name string) bool {
	f, ok := e.fields[name]
	if !ok {
		return true
	}

	f.value = strings.TrimSpace(f.control.Value)

	errs := make([]string, 0, len(f.rules))
	for _, r := range f.rules {
		if !r.Check(f.value) {
			errs = append(errs, r.Message())
		}
	}

	e.errors[name] = errs
	if len(errs) > 0 {
		f.state = TouchedInvalid
		f.ui = FieldUI{Marked: true, Shown: true, ErrorText: errs[0]}
	} else {
		f.state = TouchedValid
		f.ui = FieldUI{}
	}
	return len(errs) == 0
}

// ValidateForm validates every field and reports whether all are valid.
func (e *Engine) ValidateForm() bool {
	valid := true
	for _, name := range e.order {
		if !e.ValidateField(name) {
			valid = false
		}
	}
	return valid
}

func (e *Engine) OnSuccess(fn func(Envelope)) {
	e.onSuccess = append(e.onSuccess, fn)
}

func (e *Engine) OnInvalid(fn func()) {
	e.onInvalid = append(e.onInvalid, fn)
}

// Submit intercepts a form submission. Nothing is ever sent by the engine
// itself: a valid form notifies the success listeners with the envelope, an
// invalid one only the invalid listeners.
func (e *Engine) Submit() bool {
	if e.form == nil {
		return false
	}
	if !e.ValidateForm() {
		for _, fn := range e.onInvalid {
			fn()
		}
		return false
	}
	env := e.Data()
	for _, fn := range e.onSuccess {
		fn(env)
	}
	return true
}

// Reset restores default values and clears error state. Rules are kept.
func (e *Engine) Reset() {
	if e.form == nil {
		return
	}
	e.form.Reset()
	e.errors = make(map[string][]string)
	for _, f := range e.fields {
		f.value = ""
		f.state = Untouched
		f.ui = FieldUI{}
	}
}

// Blur is the leave-the-control event: the field is validated.
func (e *Engine) Blur(name string) bool {
	return e.ValidateField(name)
}

// Input sets a new value. The field is re-validated only if its last
// validation failed.
func (e *Engine) Input(name, value string) {
	f, ok := e.fields[name]
	if !ok {
		return
	}
	f.control.Value = value
	if f.state == TouchedInvalid {
		e.ValidateField(name)
	}
}

// Errors returns the full error list of the last validation of name.
func (e *Engine) Errors(name string) []string {
	return append([]string(nil), e.errors[name]...)
}

func (e *Engine) AllErrors() map[string][]string {
	out := make(map[string][]string)
	for name, errs := range e.errors {
		if len(errs) > 0 {
			out[name] = append([]string(nil), errs...)
		}
	}
	return out
}

func (e *Engine) UI(name string) FieldUI {
	if f, ok := e.fields[name]; ok {
		return f.ui
	}
	return FieldUI{}
}

func (e *Engine) State(name string) FieldState {
	if f, ok := e.fields[name]; ok {
		return f.state
	}
	return Untouched
}

// Data returns the trimmed current values of all fields in field order.
func (e *Engine) Data() Envelope {
	env := Envelope{
		Names:  append([]string(nil), e.order...),
		Values: make(map[string]string, len(e.order)),
	}
	for _, name := range e.order {
		env.Values[name] = strings.TrimSpace(e.fields[name].control.Value)
	}
	return env
}
