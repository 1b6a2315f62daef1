package render

import "github.com/goliatone/go-contactform/pkg/contact"

// RenderOptions describe per-request data that renderers use to customise
// their output without touching the form state.
type RenderOptions struct {
	// Action is the URL the form posts to. Empty keeps the current URL.
	Action string
	// Method defaults to POST.
	Method string
	// Hidden carries extra inputs such as CSRF tokens, keyed by input name.
	Hidden map[string]string
	// Copy holds the visible text of the form. Zero values fall back to
	// DefaultCopy.
	Copy Copy
	// FieldErrors surfaces server-side feedback next to the matching input, in
	// addition to the validator errors carried by the snapshot.
	FieldErrors map[contact.Field][]string
	// FormErrors are shown above the inputs.
	FormErrors []string
	// Theme is the resolved theme, if any.
	Theme *ThemeConfig
}

// MethodOrDefault returns the submit method, defaulting to POST.
func (o RenderOptions) MethodOrDefault() string {
	if o.Method == "" {
		return "POST"
	}
	return o.Method
}
