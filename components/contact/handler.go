package contact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	pkgcontact "github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/openapi"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
)

const maxBodyBytes = 1 << 20

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// SubmitResult is the JSON response of a submit.
type SubmitResult struct {
	Valid       bool                      `json:"valid"`
	Errors      pkgcontact.Errors         `json:"errors"`
	FieldErrors map[string][]string       `json:"fieldErrors,omitempty"`
	FormErrors  []string                  `json:"formErrors,omitempty"`
	Submission  pkgcontact.SubmissionView `json:"submission"`
}

// ValidationResult is the JSON response of a change event.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors pkgcontact.Errors `json:"errors"`
}

// ChangeEvent is the body of a validate request.
type ChangeEvent struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type handler struct {
	opts     Options
	renderer render.Renderer
	logger   *zap.Logger

	contractOnce sync.Once
	contract     []byte
	contractErr  error
}

func newHandler(opts Options) (*handler, error) {
	renderer := opts.Renderer
	if renderer == nil {
		html, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("contact: build renderer: %w", err)
		}
		renderer = html
	}
	return &handler{opts: opts, renderer: renderer, logger: opts.Logger}, nil
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions serves every component route relative to "/". Mount it
// with http.StripPrefix or use RegisterRoutes to place it under a base path.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	mux := http.NewServeMux()
	if _, err := registerAll(mux, "", opts); err != nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			opts.Logger.Error("contact: handler unavailable", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		})
	}
	return mux
}

func (h *handler) guard(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return false
	}
	allowed := false
	for _, method := range methods {
		if r.Method == method {
			allowed = true
			break
		}
	}
	if !allowed {
		w.Header().Set("Allow", strings.Join(methods, ", "))
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return false
	}
	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return false
		}
	}
	return true
}

// serveForm handles GET (render) and POST (submit) on the form route.
func (h *handler) serveForm(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, http.MethodGet, http.MethodHead, http.MethodPost) {
		return
	}
	if r.Method != http.MethodPost {
		session := h.existingSession(r)
		h.writeForm(w, r, session.Snapshot(), render.ErrorMapping{}, http.StatusOK)
		return
	}

	var session *Session
	if wantsJSON(r) {
		session = h.existingSession(r)
	} else {
		session = h.session(w, r)
	}

	values, err := decodeSubmission(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	var (
		accepted bool
		mapping  render.ErrorMapping
		snapshot pkgcontact.Snapshot
	)
	err = session.Do(func(form *pkgcontact.Form) error {
		for _, field := range pkgcontact.Fields {
			form.Change(field, values.Get(field))
		}
		if h.opts.OnSubmit != nil && form.Errors().Empty() {
			payload, hookErr := h.opts.OnSubmit(r.Context(), form.Values())
			if hookErr != nil {
				return hookErr
			}
			mapping = render.MapErrorPayload(payload)
		}
		if mapping.Empty() {
			accepted = form.Submit()
		} else {
			form.Reject()
		}
		snapshot = form.Snapshot()
		return nil
	})
	if err != nil {
		h.logger.Error("contact submit hook failed", zap.String("session", session.ID), zap.Error(err))
		writeError(w, StatusError{Code: http.StatusBadGateway, Err: err})
		return
	}

	status := http.StatusOK
	if accepted {
		h.logger.Info("contact submitted",
			zap.String("session", session.ID),
			zap.Int("displayed", len(snapshot.Submission.Items)),
		)
	} else {
		status = http.StatusUnprocessableEntity
		h.logger.Debug("contact submission rejected",
			zap.String("session", session.ID),
			zap.Strings("fields", errorFields(snapshot.Errors, mapping)),
		)
	}

	if wantsJSON(r) {
		writeJSON(w, status, SubmitResult{
			Valid:       accepted,
			Errors:      snapshot.Errors,
			FieldErrors: fieldErrorMap(mapping),
			FormErrors:  mapping.Form,
			Submission:  snapshot.Submission,
		})
		return
	}
	h.writeForm(w, r, snapshot, mapping, status)
}

// serveValidate applies one change event and returns the visible errors.
func (h *handler) serveValidate(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, http.MethodPost) {
		return
	}
	session := h.session(w, r)

	var event ChangeEvent
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&event); err != nil {
		writeError(w, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("contact: decode change event: %w", err)})
		return
	}
	field, ok := pkgcontact.ParseField(event.Field)
	if !ok {
		writeError(w, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("contact: unknown field %q", event.Field)})
		return
	}

	var result ValidationResult
	_ = session.Do(func(form *pkgcontact.Form) error {
		form.Change(field, event.Value)
		result = ValidationResult{
			Valid:  form.Errors().Empty(),
			Errors: form.VisibleErrors(),
		}
		return nil
	})
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	h.contractOnce.Do(func() {
		h.contract, h.contractErr = openapi.JSON(r.Context())
	})
	if h.contractErr != nil {
		h.logger.Error("contact openapi contract unavailable", zap.Error(h.contractErr))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(h.contract)
}

func (h *handler) sessionID(r *http.Request) string {
	if cookie, err := r.Cookie(h.opts.CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// existingSession returns the caller's stored session or, when there is none,
// a fresh form that is not kept after the request.
func (h *handler) existingSession(r *http.Request) *Session {
	if session, ok := h.opts.Sessions.Lookup(h.sessionID(r)); ok {
		return session
	}
	return h.opts.Sessions.Ephemeral()
}

func (h *handler) session(w http.ResponseWriter, r *http.Request) *Session {
	session, created := h.opts.Sessions.Acquire(h.sessionID(r))
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     h.opts.CookieName,
			Value:    session.ID,
			Path:     "/",
			HttpOnly: true,
			Secure:   h.opts.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		})
		h.logger.Debug("contact session created", zap.String("session", session.ID))
	}
	return session
}

func (h *handler) writeForm(w http.ResponseWriter, r *http.Request, snapshot pkgcontact.Snapshot, mapping render.ErrorMapping, status int) {
	renderOpts := h.opts.RenderOptions
	if renderOpts.Action == "" {
		renderOpts.Action = r.URL.Path
	}
	renderOpts.FieldErrors = mergeFieldErrors(renderOpts.FieldErrors, mapping.Fields)
	renderOpts.FormErrors = render.MergeFormErrors(renderOpts.FormErrors, mapping.Form...)

	body, err := h.renderer.Render(r.Context(), snapshot, renderOpts)
	if err != nil {
		h.logger.Error("contact render failed", zap.String("renderer", h.renderer.Name()), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func decodeSubmission(w http.ResponseWriter, r *http.Request) (pkgcontact.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if isJSON(r.Header.Get("Content-Type")) {
		var values pkgcontact.Values
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			return pkgcontact.Values{}, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("contact: decode submission: %w", err)}
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return pkgcontact.Values{}, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("contact: parse form: %w", err)}
	}
	var values pkgcontact.Values
	for _, field := range pkgcontact.Fields {
		values = values.With(field, r.PostForm.Get(string(field)))
	}
	return values, nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

func wantsJSON(r *http.Request) bool {
	if isJSON(r.Header.Get("Content-Type")) {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func mergeFieldErrors(base, extra map[pkgcontact.Field][]string) map[pkgcontact.Field][]string {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	out := make(map[pkgcontact.Field][]string, len(base)+len(extra))
	for field, messages := range base {
		out[field] = render.MergeFormErrors(nil, messages...)
	}
	for field, messages := range extra {
		out[field] = render.MergeFormErrors(out[field], messages...)
	}
	return out
}

func fieldErrorMap(mapping render.ErrorMapping) map[string][]string {
	if len(mapping.Fields) == 0 {
		return nil
	}
	out := make(map[string][]string, len(mapping.Fields))
	for field, messages := range mapping.Fields {
		out[string(field)] = append([]string(nil), messages...)
	}
	return out
}

func errorFields(errs pkgcontact.Errors, mapping render.ErrorMapping) []string {
	var out []string
	for _, fe := range errs.List() {
		out = append(out, string(fe.Field))
	}
	for _, field := range pkgcontact.Fields {
		if len(mapping.Fields[field]) > 0 {
			out = append(out, string(field))
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
