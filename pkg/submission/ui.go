package submission

// Button is the control that starts an operation. It is disabled and
// relabelled while the operation runs.
type Button interface {
	SetDisabled(disabled bool)
	SetLabel(label string)
}

type Spinner interface {
	SetVisible(visible bool)
}

// Panel receives sanitized HTML.
type Panel interface {
	SetHTML(html string)
}

type Navigator interface {
	Navigate(url string)
}

// Resetter clears the form after a successful submission.
type Resetter interface {
	Reset()
}

type nopUI struct{}

func (nopUI) SetDisabled(bool) {}
func (nopUI) SetLabel(string) {}
func (nopUI) SetVisible(bool) {}
func (nopUI) SetHTML(string) {}
func (nopUI) Navigate(string) {}
func (nopUI) Reset() {}
