// Package contactform is the entry point for the contact form: field
// validation, the form state machine, HTML rendering and the HTTP component.
package contactform

import (
	"context"
	"net/http"

	theme "github.com/goliatone/go-theme"

	contactcomponent "github.com/goliatone/go-contactform/components/contact"
	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/openapi"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
)

// Field identifies one of the four inputs.
type Field = contact.Field

// Values holds the raw text of the inputs.
type Values = contact.Values

// Errors is the per-field validation result.
type Errors = contact.Errors

// Form is the contact form state machine.
type Form = contact.Form

// Snapshot is the renderer-facing view of a Form.
type Snapshot = contact.Snapshot

// RenderOptions describes per-request overrides that renderers can use to
// surface server-side errors, hidden inputs, copy and theme.
type RenderOptions = render.RenderOptions

// NewForm returns an empty form validated with the default rules.
func NewForm() *Form {
	return contact.NewForm()
}

// Validate checks values with the default rules.
func Validate(values Values) Errors {
	return contact.Validate(values)
}

// RenderHTML renders form with the built-in HTML renderer.
func RenderHTML(ctx context.Context, form *Form, opts RenderOptions, options ...vanilla.Option) ([]byte, error) {
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, err
	}
	if form == nil {
		form = contact.NewForm()
	}
	return renderer.Render(ctx, form.Snapshot(), opts)
}

// ResolveTheme resolves a go-theme selection for the HTML renderer, falling
// back to the embedded form template when the theme overrides none.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*render.ThemeConfig, error) {
	return render.ResolveTheme(selector, name, variant, map[string]string{
		vanilla.ThemePartialForm: vanilla.FormTemplate,
	})
}

// NewHandler builds the HTTP component handler. Routes are served from "/".
func NewHandler(fns ...contactcomponent.OptionFn) http.Handler {
	return contactcomponent.NewHandler(fns...)
}

// OpenAPIJSON returns the contract of the HTTP component as JSON.
func OpenAPIJSON(ctx context.Context) ([]byte, error) {
	return openapi.JSON(ctx)
}
