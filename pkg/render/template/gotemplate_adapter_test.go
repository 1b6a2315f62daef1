package template_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-contactform/pkg/testsupport"
)

var templatesFS = fstest.MapFS{
	"hello.tpl":      {Data: []byte("Hello {{ name }}!")},
	"use-global.tpl": {Data: []byte("env={{ settings.env }}")},
	"use-filter.tpl": {Data: []byte("{{ name|contact_shout }}")},
	"error.tpl":      {Data: []byte("{{ message|errortext }}")},
	"values.tpl":     {Data: []byte("{{ firstName }} {{ lastName }}")},
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	if result != "Hello Ada!" {
		t.Fatalf("render template mismatch result: %q", result)
	}
	if written != result {
		t.Fatalf("render template mismatch writer: %q", written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	shout := func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	}
	if err := engine.RegisterFilter("contact_shout", shout); err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("register filter: %v", err)
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected output %q", result)
	}

	if err := engine.RegisterFilter("contact_shout", shout); err == nil {
		t.Fatalf("expected duplicate filter to fail")
	}
}

func TestGoTemplateEngine_ErrorTextFilter(t *testing.T) {
	engine := newEngine(t)

	for _, message := range []string{"lastName is a required field.", "Error: lastName is a required field."} {
		result, err := engine.RenderTemplate("error", map[string]any{"message": message})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if result != "Error: lastName is a required field." {
			t.Fatalf("unexpected output %q", result)
		}
	}
}

func TestGoTemplateEngine_StructDataUsesJSONNames(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("values.tpl", contact.Values{FirstName: "Kelly", LastName: "Baptista"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Kelly Baptista" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("{{ a }}-{{ b }}", map[string]any{"a": "one", "b": "two"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "one-two" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_ErrorTextIsEscaped(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("error", map[string]any{"message": "a<b"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Error: a&lt;b" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_BaseDirOverridesFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tpl"), []byte("Hi {{ name }}"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir), gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hi Ada" {
		t.Fatalf("expected directory template, got %q", result)
	}

	fallback, err := engine.RenderTemplate("values", contact.Values{FirstName: "Kelly", LastName: "Baptista"})
	if err != nil {
		t.Fatalf("render fallback: %v", err)
	}
	if fallback != "Kelly Baptista" {
		t.Fatalf("expected fs fallback, got %q", fallback)
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
	if _, err := newEngine(t).RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
