package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/giterra/giterra/internal/catalog"
	"github.com/giterra/giterra/internal/frontend"
	"github.com/giterra/giterra/internal/log"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	opts := &sourceOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve planet segments over HTTP",
		Long: `Serve exposes the planet generator as a JSON API for viewers.

Every request re-reads the commit source, so segments follow new commits
without a restart.

  GET /api/health
  GET /api/themes
  GET /api/segments/{segment}?seed=N`,
		Example: `  giterra serve --repo .
  giterra serve --input commits.yaml --addr :9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "commit file (.json, .yaml or .yml)")
	cmd.Flags().StringVarP(&opts.repo, "repo", "r", "", "git repository to read commits from (default \".\")")
	cmd.Flags().String("addr", "", "listen address, host:port")
	cmd.MarkFlagsMutuallyExclusive("input", "repo")

	_ = a.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func (a *app) runServe(cmd *cobra.Command, opts *sourceOptions) error {
	src, _, err := a.source(opts)
	if err != nil {
		return err
	}
	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	h := frontend.NewHandler(src, cat,
		frontend.WithRadius(a.cfg.Planet.Radius),
		frontend.WithSeed(a.cfg.Generation.Seed),
	)
	mux := http.NewServeMux()
	h.RegisterAPIRoutes(mux)

	ln, err := net.Listen("tcp", a.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.cfg.Server.Addr, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Serving planet API on http://%s\n", ln.Addr())
	return serveHTTP(cmd.Context(), ln, mux)
}

// serveHTTP serves handler on ln until ctx is done, then shuts down gracefully.
func serveHTTP(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	log.SafeGo(log.CatServer, "http.serve", func() {
		errCh <- srv.Serve(ln)
	})
	log.Info(log.CatServer, "HTTP server started", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	log.Info(log.CatServer, "HTTP server stopped")
	return nil
}
