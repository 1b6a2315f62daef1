package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	contactcomponent "github.com/goliatone/go-contactform/components/contact"
	"github.com/goliatone/go-contactform/pkg/config"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the contact form over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a.cfg, a.logger, nil)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// newServerHandler wires the contact component and the embedded stylesheet
// under the configured base path.
func newServerHandler(cfg config.Config, logger *zap.Logger) (http.Handler, error) {
	basePath := cfg.Server.BasePath
	assetsPath := path.Join("/", basePath, "assets") + "/"

	stylesheet := cfg.Server.Stylesheet
	if stylesheet == "" {
		stylesheet = assetsPath + vanilla.StylesheetName
	}
	html, err := htmlRenderer(cfg, stylesheet)
	if err != nil {
		return nil, err
	}
	renderOpts, err := renderOptions(cfg, logger)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	component := contactcomponent.New(
		contactcomponent.WithRules(cfg.Rules),
		contactcomponent.WithCookieName(cfg.Server.CookieName),
		contactcomponent.WithSessionLimits(cfg.Server.MaxSessions, cfg.SessionIdle()),
		contactcomponent.WithRenderer(html),
		contactcomponent.WithRenderOptions(renderOpts),
		contactcomponent.WithLogger(logger.Named("contact")),
	)
	routes, err := component.RegisterRoutes(mux, basePath)
	if err != nil {
		return nil, err
	}
	mux.Handle(assetsPath, http.StripPrefix(assetsPath, http.FileServer(http.FS(vanilla.AssetsFS()))))

	logger.Info("routes registered",
		zap.String("form", routes.Form),
		zap.String("validate", routes.Validate),
		zap.String("openapi", routes.OpenAPI),
		zap.String("assets", assetsPath),
	)
	return mux, nil
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down within
// the configured timeout. When ready is non-nil it receives the bound address.
func serve(ctx context.Context, cfg config.Config, logger *zap.Logger, ready chan<- string) error {
	handler, err := newServerHandler(cfg, logger)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return err
	}
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("server listening", zap.String("addr", listener.Addr().String()))
		if ready != nil {
			ready <- listener.Addr().String()
		}
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		logger.Info("server shutting down")
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
