package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
)

type namedRenderer struct{ name string }

func (r namedRenderer) Name() string        { return r.name }
func (r namedRenderer) ContentType() string { return "text/plain" }
func (r namedRenderer) Render(_ context.Context, _ contact.Snapshot, _ render.RenderOptions) ([]byte, error) {
	return []byte(r.name), nil
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(namedRenderer{name: "vanilla"})
	registry.MustRegister(namedRenderer{name: "json"})

	if err := registry.Register(namedRenderer{name: "json"}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := registry.Register(namedRenderer{}); err == nil {
		t.Fatalf("expected unnamed renderer to fail")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}

	if diff := cmp.Diff([]string{"json", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("renderer list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("vanilla") || registry.Has("tui") {
		t.Fatalf("unexpected Has results")
	}
	got, err := registry.Get("vanilla")
	if err != nil || got.Name() != "vanilla" {
		t.Fatalf("unexpected lookup result %v, %v", got, err)
	}
	if _, err := registry.Get("tui"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
}

func TestCopy_WithDefaults(t *testing.T) {
	custom := render.Copy{
		Title:  "Say hello",
		Labels: map[contact.Field]string{contact.FieldMessage: "Your note"},
	}.WithDefaults()

	if custom.Title != "Say hello" || custom.SubmitLabel != "Submit" {
		t.Fatalf("unexpected copy %#v", custom)
	}
	if custom.Label(contact.FieldMessage) != "Your note" || custom.Label(contact.FieldFirstName) != "First Name" {
		t.Fatalf("unexpected labels %#v", custom.Labels)
	}
	if render.DefaultCopy().Placeholder(contact.FieldFirstName) != "Edd" {
		t.Fatalf("expected default first name placeholder")
	}
}
