package render

import (
	"context"

	"github.com/goliatone/go-contactform/pkg/contact"
)

// Renderer turns a contact form snapshot into a byte representation (HTML,
// JSON, terminal output).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snapshot contact.Snapshot, options RenderOptions) ([]byte, error)
}
