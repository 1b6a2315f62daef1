package contact

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/forms"); got != "/forms/contact" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("forms/", WithFormPath("hello")); got != "/forms/hello" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestRegisterRoutes_RegistersHandlers(t *testing.T) {
	mux := http.NewServeMux()
	routes, err := RegisterRoutes(mux, "/forms")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := Routes{Form: "/forms/contact", Validate: "/forms/contact/validate", OpenAPI: "/forms/openapi.json"}
	if diff := cmp.Diff(want, routes); diff != "" {
		t.Fatalf("routes mismatch (-want +got):\n%s", diff)
	}

	req := httptest.NewRequest(http.MethodGet, routes.Form, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRegisterRoutes_Errors(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
	_, err := RegisterRoutes(http.NewServeMux(), "/", WithFormPath("/same"), WithValidatePath("/same"))
	if err == nil {
		t.Fatalf("expected error for colliding routes")
	}
}

func TestComponent_SharesSessions(t *testing.T) {
	c := New(WithOpenAPIPath(""))
	mux := http.NewServeMux()
	routes, err := c.RegisterRoutes(mux, "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if routes.OpenAPI != "" {
		t.Fatalf("expected contract route to be disabled, got %q", routes.OpenAPI)
	}

	rec := postForm(t, mux, validForm())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if c.Sessions().Len() != 1 {
		t.Fatalf("expected one session, got %d", c.Sessions().Len())
	}
	if c.Options().Sessions != c.Sessions() {
		t.Fatalf("expected options copy to share the session store")
	}
}
