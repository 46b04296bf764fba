package formvalidator

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helpRequestPage = `<!DOCTYPE html>
<html><body>
<form id="search"><input name="q"></form>
<form id="helpRequestForm">
  <div class="form-group">
    <select name="help_type">
      <option value="">Choisir</option>
      <option value="legal">Juridique</option>
    </select>
    <span class="form-error"></span>
  </div>
  <div class="form-group">
    <select name="urgency_level">
      <option value="low">Faible</option>
      <option value="medium" selected>Moyen</option>
    </select>
  </div>
  <textarea name="situation">  Décrivez ici </textarea>
  <input type="text" name="location" value="Tunis">
  <input type="radio" name="contact_method" value="email">
  <input type="radio" name="contact_method" value="phone">
  <input type="hidden" name="csrf" value="abc">
  <input type="submit" name="send" value="Envoyer">
  <input placeholder="sans nom">
  <button type="submit">Envoyer la demande</button>
</form>
</body></html>`

func TestParseForm(t *testing.T) {
	form, err := ParseForm(strings.NewReader(helpRequestPage), "helpRequestForm")
	require.NoError(t, err)
	assert.Equal(t, "helpRequestForm", form.ID)

	e := Attach(form)
	assert.Equal(t, []string{"help_type", "urgency_level", "situation", "location", "contact_method", "csrf"}, e.Fields())

	data := e.Data()
	assert.Equal(t, "", data.Get("help_type"))
	assert.Equal(t, "medium", data.Get("urgency_level"))
	assert.Equal(t, "Décrivez ici", data.Get("situation"))
	assert.Equal(t, "Tunis", data.Get("location"))
	assert.Equal(t, "phone", data.Get("contact_method"))
}

func TestParseFormFirstFormWhenNoID(t *testing.T) {
	form, err := ParseForm(strings.NewReader(helpRequestPage), "")
	require.NoError(t, err)
	assert.Equal(t, "search", form.ID)
	require.Len(t, form.Controls, 1)
	assert.Equal(t, "q", form.Controls[0].Name)
}

func TestParseFormMissing(t *testing.T) {
	_, err := ParseForm(strings.NewReader(helpRequestPage), "nope")
	assert.True(t, errors.Is(err, ErrFormNotFound))
}

func TestFormReset(t *testing.T) {
	form, err := ParseForm(strings.NewReader(helpRequestPage), "helpRequestForm")
	require.NoError(t, err)
	e := Attach(form)

	e.Input("location", "Sfax")
	e.Reset()

	assert.Equal(t, "Tunis", e.Data().Get("location"))
}

func TestFormFromValues(t *testing.T) {
	values := url.Values{"help_type": {"legal"}, "extra": {"ignored"}}
	form := FormFromValues([]string{"help_type", "situation"}, values)

	e := Attach(form)
	assert.Equal(t, []string{"help_type", "situation"}, e.Fields())
	assert.Equal(t, "legal", e.Data().Get("help_type"))
	assert.Equal(t, "", e.Data().Get("situation"))
}
