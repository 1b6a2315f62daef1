package contact

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	pkgcontact "github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
)

const (
	DefaultFormPath     = "/contact"
	DefaultValidatePath = "/contact/validate"
	DefaultOpenAPIPath  = "/openapi.json"
	DefaultCookieName   = "contactform_session"
)

type GuardFunc func(r *http.Request) error

// SubmitHook receives values that passed validation before they are accepted.
// A non-empty payload rejects the submission; keys are field paths such as
// "/email" or "data.firstName" and are mapped onto the form.
type SubmitHook func(ctx context.Context, values pkgcontact.Values) (map[string][]string, error)

type Options struct {
	FormPath      string
	ValidatePath  string
	OpenAPIPath   string
	CookieName    string
	SecureCookie  bool
	Guard         GuardFunc
	OnSubmit      SubmitHook
	Rules         pkgcontact.Rules
	Renderer      render.Renderer
	RenderOptions render.RenderOptions
	Sessions      *SessionStore
	MaxSessions   int
	SessionIdle   time.Duration
	Logger        *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		FormPath:     DefaultFormPath,
		ValidatePath: DefaultValidatePath,
		OpenAPIPath:  DefaultOpenAPIPath,
		CookieName:   DefaultCookieName,
		Rules:        pkgcontact.DefaultRules(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.FormPath == "" {
		opts.FormPath = DefaultFormPath
	}
	if opts.ValidatePath == "" {
		opts.ValidatePath = DefaultValidatePath
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Sessions == nil {
		opts.Sessions = NewSessionStore(pkgcontact.NewValidator(opts.Rules),
			WithMaxSessions(opts.MaxSessions),
			WithIdleTimeout(opts.SessionIdle),
		)
	}
	return opts
}

func WithFormPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FormPath = path
	}
}

func WithValidatePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ValidatePath = path
	}
}

// WithOpenAPIPath sets the contract route. An empty path disables it.
func WithOpenAPIPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OpenAPIPath = path
	}
}

func WithCookieName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CookieName = name
	}
}

func WithSecureCookie(secure bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SecureCookie = secure
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithSubmitHook(hook SubmitHook) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OnSubmit = hook
	}
}

// WithRules sets the validation rules of new sessions. It has no effect when
// a session store is supplied with WithSessions.
func WithRules(rules pkgcontact.Rules) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Rules = rules
	}
}

func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithRenderOptions(renderOpts render.RenderOptions) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RenderOptions = renderOpts
	}
}

func WithSessions(store *SessionStore) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Sessions = store
	}
}

// WithSessionLimits bounds the default session store. It has no effect when a
// session store is supplied with WithSessions.
func WithSessionLimits(maxSessions int, idle time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxSessions = maxSessions
		o.SessionIdle = idle
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
