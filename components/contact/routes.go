package contact

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Routes are the patterns registered on a mux. OpenAPI is empty when the
// contract route is disabled.
type Routes struct {
	Form     string
	Validate string
	OpenAPI  string
}

// MountPath returns the full mount path of the form route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.FormPath)
}

// RegisterRoutes registers the component routes under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Routes, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers the routes using a pre-built Options value.
// Callers are expected to pass an Options value produced by NewOptions (or equivalent) so defaults apply.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (Routes, error) {
	if mux == nil {
		return Routes{}, fmt.Errorf("contact: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	return registerAll(mux, basePath, opts)
}

func registerAll(mux Mux, basePath string, opts Options) (Routes, error) {
	h, err := newHandler(opts)
	if err != nil {
		return Routes{}, err
	}

	routes := Routes{
		Form:     mountPath(basePath, opts.FormPath),
		Validate: mountPath(basePath, opts.ValidatePath),
	}
	if routes.Form == routes.Validate {
		return Routes{}, fmt.Errorf("contact: form and validate routes collide at %q", routes.Form)
	}
	mux.Handle(routes.Form, http.HandlerFunc(h.serveForm))
	mux.Handle(routes.Validate, http.HandlerFunc(h.serveValidate))
	if strings.TrimSpace(opts.OpenAPIPath) != "" {
		routes.OpenAPI = mountPath(basePath, opts.OpenAPIPath)
		mux.Handle(routes.OpenAPI, http.HandlerFunc(h.serveOpenAPI))
	}
	return routes, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
