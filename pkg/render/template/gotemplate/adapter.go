package gotemplate

import (
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
	gotemplate "github.com/goliatone/go-template"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render/template"
)

// Engine is the go-template pongo2 engine.
type Engine = gotemplate.Engine

var _ template.TemplateRenderer = (*Engine)(nil)

// Option configures the engine before it loads.
type Option func(*[]gotemplate.Option)

// WithBaseDir loads templates from a directory on disk. When combined with
// WithFS the directory is searched first.
func WithBaseDir(dir string) Option {
	return func(opts *[]gotemplate.Option) {
		if dir = strings.TrimSpace(dir); dir != "" {
			*opts = append(*opts, gotemplate.WithBaseDir(dir))
		}
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(opts *[]gotemplate.Option) {
		if files != nil {
			*opts = append(*opts, gotemplate.WithFS(files))
		}
	}
}

// WithExtension overrides the extension appended to bare template names.
func WithExtension(ext string) Option {
	return func(opts *[]gotemplate.Option) {
		if ext = strings.TrimSpace(ext); ext != "" {
			*opts = append(*opts, gotemplate.WithExtension(ext))
		}
	}
}

// New builds a go-template engine with the contact filters registered.
// Either WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	opts := []gotemplate.Option{
		gotemplate.WithTemplateFunc(map[string]any{
			"errortext": pongo2.FilterFunction(filterErrorText),
		}),
	}
	for _, option := range options {
		if option != nil {
			option(&opts)
		}
	}
	return gotemplate.NewRenderer(opts...)
}

// filterErrorText renders a validation message the way users see it.
func filterErrorText(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	msg := strings.TrimSpace(in.String())
	if msg == "" {
		return pongo2.AsValue(""), nil
	}
	if strings.HasPrefix(msg, contact.ErrorPrefix) {
		return pongo2.AsValue(msg), nil
	}
	return pongo2.AsValue(contact.ErrorPrefix + msg), nil
}
