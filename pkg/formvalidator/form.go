package formvalidator

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var ErrFormNotFound = errors.New("form not found")

// Control is one input-capable element of a form.
type Control struct {
	Name string
	// Tag is input, textarea or select.
	Tag  string
	Type string
	// Value is the current value; Default is what Reset restores.
	Value   string
	Default string
}

// Form is a container of controls in document order.
type Form struct {
	ID       string
	Controls []*Control
}

// NewForm builds a form whose controls start at their default values.
func NewForm(id string, controls ...*Control) *Form {
	for _, c := range controls {
		if c.Tag == "" {
			c.Tag = "input"
		}
		c.Value = c.Default
	}
	return &Form{ID: id, Controls: controls}
}

// FormFromValues builds a form with one control per name, populated from
// values. Names missing from values get an empty control.
func FormFromValues(names []string, values url.Values) *Form {
	f := &Form{}
	for _, name := range names {
		f.Controls = append(f.Controls, &Control{
			Name:  name,
			Tag:   "input",
			Type:  "text",
			Value: values.Get(name),
		})
	}
	return f
}

// Reset restores every control to its default value.
func (f *Form) Reset() {
	for _, c := range f.Controls {
		c.Value = c.Default
	}
}

// ParseForm reads an HTML document and returns the form with the given id,
// or the first form when formID is empty. Named input, textarea and select
// descendants become controls; button-like inputs are skipped.
func ParseForm(r io.Reader, formID string) (*Form, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	node := findForm(doc, formID)
	if node == nil {
		return nil, fmt.Errorf("%w: %q", ErrFormNotFound, formID)
	}

	form := &Form{ID: attr(node, "id")}
	collectControls(node, form)
	return form, nil
}

func findForm(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Form {
		if id == "" || attr(n, "id") == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findForm(c, id); found != nil {
			return found
		}
	}
	return nil
}

func collectControls(n *html.Node, form *Form) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if ctl := controlFor(c); ctl != nil {
				form.Controls = append(form.Controls, ctl)
			}
		}
		collectControls(c, form)
	}
}

func controlFor(n *html.Node) *Control {
	name := attr(n, "name")
	if name == "" {
		return nil
	}

	var def string
	typ := strings.ToLower(attr(n, "type"))
	switch n.DataAtom {
	case atom.Input:
		switch typ {
		case "submit", "button", "reset", "image":
			return nil
		}
		if typ == "" {
			typ = "text"
		}
		def = attr(n, "value")
	case atom.Textarea:
		def = textContent(n)
	case atom.Select:
		def = selectedOption(n)
	default:
		return nil
	}

	return &Control{
		Name:    name,
		Tag:     n.Data,
		Type:    typ,
		Value:   def,
		Default: def,
	}
}

// selectedOption returns the value of the option marked selected, or of the
// first option.
func selectedOption(sel *html.Node) string {
	var first *html.Node
	var selected *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Option {
				if first == nil {
					first = c
				}
				if hasAttr(c, "selected") {
					selected = c
				}
			}
			walk(c)
		}
	}
	walk(sel)

	opt := selected
	if opt == nil {
		opt = first
	}
	if opt == nil {
		return ""
	}
	if hasAttr(opt, "value") {
		return attr(opt, "value")
	}
	return strings.TrimSpace(textContent(opt))
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		} else {
			b.WriteString(textContent(c))
		}
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}
