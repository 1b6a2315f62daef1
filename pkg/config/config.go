// Package config loads the contact form settings from JSON or YAML files.
package config

import (
	"fmt"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
)

const (
	DefaultAddr            = ":8080"
	DefaultCookieName      = "contactform_session"
	DefaultShutdownTimeout = 10 * time.Second
)

// Config is the root document.
type Config struct {
	Form   FormConfig    `json:"form" yaml:"form"`
	Rules  contact.Rules `json:"rules" yaml:"rules"`
	Server ServerConfig  `json:"server" yaml:"server"`
	Theme  ThemeConfig   `json:"theme" yaml:"theme"`
}

// FormConfig overrides the visible text. Label and placeholder keys are field
// names ("firstName", "email", ...).
type FormConfig struct {
	Title        string            `json:"title" yaml:"title"`
	SubmitLabel  string            `json:"submitLabel" yaml:"submitLabel"`
	Labels       map[string]string `json:"labels" yaml:"labels"`
	Placeholders map[string]string `json:"placeholders" yaml:"placeholders"`
}

// ServerConfig configures the HTTP command.
type ServerConfig struct {
	Addr            string `json:"addr" yaml:"addr"`
	BasePath        string `json:"basePath" yaml:"basePath"`
	CookieName      string `json:"cookieName" yaml:"cookieName"`
	ShutdownTimeout string `json:"shutdownTimeout" yaml:"shutdownTimeout"`
	MaxSessions     int    `json:"maxSessions" yaml:"maxSessions"`
	SessionIdle     string `json:"sessionIdle" yaml:"sessionIdle"`
	DefaultStyles   bool   `json:"defaultStyles" yaml:"defaultStyles"`
	Stylesheet      string `json:"stylesheet" yaml:"stylesheet"`
}

// ThemeConfig names the theme selection to apply and, optionally, defines the
// theme inline.
type ThemeConfig struct {
	Name      string                        `json:"name" yaml:"name"`
	Variant   string                        `json:"variant" yaml:"variant"`
	Version   string                        `json:"version" yaml:"version"`
	Tokens    map[string]string             `json:"tokens" yaml:"tokens"`
	Templates map[string]string             `json:"templates" yaml:"templates"`
	Assets    ThemeAssets                   `json:"assets" yaml:"assets"`
	Variants  map[string]ThemeVariantConfig `json:"variants" yaml:"variants"`
}

// ThemeAssets maps asset keys to files below Prefix.
type ThemeAssets struct {
	Prefix string            `json:"prefix" yaml:"prefix"`
	Files  map[string]string `json:"files" yaml:"files"`
}

// ThemeVariantConfig overrides the base theme.
type ThemeVariantConfig struct {
	Tokens    map[string]string `json:"tokens" yaml:"tokens"`
	Templates map[string]string `json:"templates" yaml:"templates"`
	Assets    ThemeAssets       `json:"assets" yaml:"assets"`
}

// Manifest converts an inline theme into a go-theme manifest. It returns nil
// when no theme is named.
func (t ThemeConfig) Manifest() *theme.Manifest {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return nil
	}
	manifest := &theme.Manifest{
		Name:      name,
		Version:   t.Version,
		Tokens:    t.Tokens,
		Templates: t.Templates,
		Assets:    theme.Assets{Prefix: t.Assets.Prefix, Files: t.Assets.Files},
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for key, variant := range t.Variants {
			manifest.Variants[key] = theme.Variant{
				Tokens:    variant.Tokens,
				Templates: variant.Templates,
				Assets:    theme.Assets{Prefix: variant.Assets.Prefix, Files: variant.Assets.Files},
			}
		}
	}
	return manifest
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Rules: contact.DefaultRules(),
		Server: ServerConfig{
			Addr:       DefaultAddr,
			CookieName: DefaultCookieName,
		},
	}
}

// Validate checks the field keys and the shutdown timeout.
func (c Config) Validate() error {
	if err := validateFieldKeys("labels", c.Form.Labels); err != nil {
		return err
	}
	if err := validateFieldKeys("placeholders", c.Form.Placeholders); err != nil {
		return err
	}
	if c.Rules.MinFirstNameLength < 0 {
		return fmt.Errorf("config: rules.minFirstNameLength must not be negative, got %d", c.Rules.MinFirstNameLength)
	}
	if variant := strings.TrimSpace(c.Theme.Variant); variant != "" && len(c.Theme.Variants) > 0 {
		if _, ok := c.Theme.Variants[variant]; !ok {
			return fmt.Errorf("config: theme.variant %q is not defined", variant)
		}
	}
	if raw := strings.TrimSpace(c.Server.ShutdownTimeout); raw != "" {
		if _, err := time.ParseDuration(raw); err != nil {
			return fmt.Errorf("config: server.shutdownTimeout: %w", err)
		}
	}
	if c.Server.MaxSessions < 0 {
		return fmt.Errorf("config: server.maxSessions must not be negative, got %d", c.Server.MaxSessions)
	}
	if raw := strings.TrimSpace(c.Server.SessionIdle); raw != "" {
		if _, err := time.ParseDuration(raw); err != nil {
			return fmt.Errorf("config: server.sessionIdle: %w", err)
		}
	}
	return nil
}

// SessionIdle returns the parsed session idle timeout. Zero means the
// component default.
func (c Config) SessionIdle() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.Server.SessionIdle))
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

// Copy converts the form section into render copy, filling gaps with the
// defaults.
func (c Config) Copy() render.Copy {
	out := render.Copy{
		Title:        strings.TrimSpace(c.Form.Title),
		SubmitLabel:  strings.TrimSpace(c.Form.SubmitLabel),
		Labels:       fieldMap(c.Form.Labels),
		Placeholders: fieldMap(c.Form.Placeholders),
	}
	return out.WithDefaults()
}

// ShutdownTimeout returns the parsed timeout or DefaultShutdownTimeout.
func (c Config) ShutdownTimeout() time.Duration {
	raw := strings.TrimSpace(c.Server.ShutdownTimeout)
	if raw == "" {
		return DefaultShutdownTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return DefaultShutdownTimeout
	}
	return d
}

func (c Config) withDefaults() Config {
	def := Default()
	if c.Rules.MinFirstNameLength == 0 {
		c.Rules = def.Rules
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = def.Server.Addr
	}
	if strings.TrimSpace(c.Server.CookieName) == "" {
		c.Server.CookieName = def.Server.CookieName
	}
	c.Server.BasePath = normaliseBasePath(c.Server.BasePath)
	return c
}

func normaliseBasePath(raw string) string {
	trimmed := strings.Trim(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}

func validateFieldKeys(section string, values map[string]string) error {
	for key := range values {
		if _, ok := contact.ParseField(key); !ok {
			return fmt.Errorf("config: form.%s: unknown field %q", section, key)
		}
	}
	return nil
}

func fieldMap(values map[string]string) map[contact.Field]string {
	if len(values) == 0 {
		return nil
	}
	out := make(map[contact.Field]string, len(values))
	for key, value := range values {
		field, ok := contact.ParseField(key)
		if !ok {
			continue
		}
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out[field] = trimmed
		}
	}
	return out
}
