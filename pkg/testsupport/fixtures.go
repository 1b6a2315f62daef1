package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/contact"
)

// ValidValues returns a submission that passes validation without a message.
func ValidValues() contact.Values {
	return contact.Values{
		FirstName: "Sebastian",
		LastName:  "Mohan",
		Email:     "imacat@cat.com",
	}
}

// FilledForm returns a form with values applied through Change events, in
// field order, without submitting it.
func FilledForm(values contact.Values) *contact.Form {
	form := contact.NewForm()
	for _, field := range contact.Fields {
		form.Change(field, values.Get(field))
	}
	return form
}

// SubmittedForm returns FilledForm(values) after a submit attempt.
func SubmittedForm(t *testing.T, values contact.Values, wantAccepted bool) *contact.Form {
	t.Helper()

	form := FilledForm(values)
	if got := form.Submit(); got != wantAccepted {
		t.Fatalf("submit accepted=%v, want %v (errors: %v)", got, wantAccepted, form.Errors().List())
	}
	return form
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
