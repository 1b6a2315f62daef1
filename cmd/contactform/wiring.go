package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/config"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
)

// themeFallbacks are the partials used wherever a theme defines none.
func themeFallbacks() map[string]string {
	return map[string]string{
		vanilla.ThemePartialForm: vanilla.FormTemplate,
	}
}

// resolveTheme turns the inline theme of cfg into renderer theme config. It
// returns nil when no theme is configured.
func resolveTheme(cfg config.Config, logger *zap.Logger) (*render.ThemeConfig, error) {
	manifest := cfg.Theme.Manifest()
	if manifest == nil {
		return nil, nil
	}
	selector := render.NewManifestSelector(manifest)
	themeCfg, err := render.ResolveTheme(selector, manifest.Name, cfg.Theme.Variant, themeFallbacks())
	if err != nil {
		return nil, err
	}
	logger.Debug("theme resolved",
		zap.String("theme", themeCfg.Theme),
		zap.String("variant", themeCfg.Variant),
		zap.Int("tokens", len(themeCfg.Tokens)),
	)
	return themeCfg, nil
}

// renderOptions builds the per-request options shared by every renderer.
func renderOptions(cfg config.Config, logger *zap.Logger) (render.RenderOptions, error) {
	themeCfg, err := resolveTheme(cfg, logger)
	if err != nil {
		return render.RenderOptions{}, err
	}
	return render.RenderOptions{
		Copy:  cfg.Copy(),
		Theme: themeCfg,
	}, nil
}

func htmlRenderer(cfg config.Config, stylesheet string) (*vanilla.Renderer, error) {
	opts := []vanilla.Option{vanilla.WithStylesheet(stylesheet)}
	if cfg.Server.DefaultStyles {
		opts = append(opts, vanilla.WithDefaultStyles())
	}
	return vanilla.New(opts...)
}

// newRegistry registers the HTML renderer and a terminal renderer using the
// given prompt options.
func newRegistry(cfg config.Config, tuiOpts ...tui.Option) (*render.Registry, error) {
	registry := render.NewRegistry()

	html, err := htmlRenderer(cfg, cfg.Server.Stylesheet)
	if err != nil {
		return nil, fmt.Errorf("build html renderer: %w", err)
	}
	if err := registry.Register(html); err != nil {
		return nil, err
	}

	terminal, err := tui.New(append([]tui.Option{tui.WithRules(cfg.Rules)}, tuiOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("build terminal renderer: %w", err)
	}
	if err := registry.Register(terminal); err != nil {
		return nil, err
	}
	return registry, nil
}
