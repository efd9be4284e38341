package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/jask/storefront/internal/api"
	"github.com/jask/storefront/internal/config"
	"github.com/jask/storefront/internal/database"
	"github.com/jask/storefront/internal/database/repository"
	"github.com/jask/storefront/internal/events"
	"github.com/jask/storefront/internal/logging"
	"github.com/jask/storefront/internal/tui"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	BaseURL    string
}

// load resolves configuration with flag overrides applied.
func (o *RootOptions) load() (config.Config, error) {
	if o.ConfigPath != "" {
		if err := os.Setenv("STOREFRONT_CONFIG", o.ConfigPath); err != nil {
			return config.Config{}, errors.Wrap(err, "set config path")
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.BaseURL != "" {
		cfg.API.BaseURL = o.BaseURL
	}
	return cfg, nil
}

// NewRootCommand creates the storefront command. Without a subcommand it runs
// the terminal storefront.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Terminal storefront",
		Long:          "Browse the catalog, fill a basket and place orders from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStorefront(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config.toml")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level override (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.BaseURL, "api", "", "storefront API base URL override")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewOrdersCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

func runStorefront(ctx context.Context, opts *RootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := opts.load()
	if err != nil {
		return errors.Wrap(err, "config")
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return errors.Wrap(err, "logger")
	}
	defer func() { _ = log.Sync() }()

	db, err := database.OpenAndMigrate(cfg.Database.Path)
	if err != nil {
		return errors.Wrap(err, "open journal")
	}
	defer db.Close()

	lang, err := language.Parse(cfg.UI.Language)
	if err != nil {
		log.Warn("Unknown UI language, using English", zap.String("language", cfg.UI.Language))
		lang = language.English
	}

	bus := events.NewBus(events.WithLogger(log.Named("bus")))
	app := tui.New(ctx, bus, tui.Options{
		Service:  api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log.Named("api")),
		Journal:  repository.NewReceiptRepo(db),
		Logger:   log.Named("presenter"),
		CDNURL:   cfg.API.CDNURL,
		Unit:     cfg.UI.Currency,
		Language: lang,
	})
	defer app.Presenter().Close()

	log.Info("Starting storefront", zap.String("api", cfg.API.BaseURL))
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return errors.Wrap(err, "run tui")
	}
	return nil
}
