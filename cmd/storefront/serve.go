package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/storefront/internal/demoapi"
	"github.com/jask/storefront/internal/logging"
	"github.com/jask/storefront/internal/model"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr    string
	Catalog string
	Prefix  string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo storefront API",
		Long: `Serve GET /product and POST /order backed by a YAML catalog.

Example:
  storefront serve --addr :8085
  storefront serve --catalog ./products.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default from config server.addr)")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "YAML catalog file (default: built-in demo catalog)")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "/api/weblarek", "route prefix")

	return cmd
}

func loadProducts(path string) ([]model.Product, error) {
	if path == "" {
		return demoapi.DefaultCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open catalog")
	}
	defer f.Close()
	return demoapi.LoadCatalog(f)
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := opts.load()
	if err != nil {
		return errors.Wrap(err, "config")
	}
	// The server owns the terminal, so it logs to stderr.
	cfg.Log.Path = ""
	log, err := logging.New(cfg.Log)
	if err != nil {
		return errors.Wrap(err, "logger")
	}
	defer func() { _ = log.Sync() }()

	products, err := loadProducts(opts.Catalog)
	if err != nil {
		return err
	}
	addr := opts.Addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	r := chi.NewRouter()
	r.Mount(opts.Prefix, demoapi.New(products, log).Routes())
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Serving demo API", zap.String("addr", addr), zap.String("prefix", opts.Prefix), zap.Int("products", len(products)))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("Shutting down")
	return srv.Shutdown(shutdownCtx)
}
