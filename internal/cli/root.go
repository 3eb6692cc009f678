// Package cli is the presentation surface over the storefront core. It only
// parses input, calls the core services, and renders their results; every
// policy decision (role gates, fallback, cache handling) lives in the core.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sweetshop/storefront/internal/core/cache"
	"github.com/sweetshop/storefront/internal/core/service"
	"github.com/sweetshop/storefront/internal/infrastructure/api"
	"github.com/sweetshop/storefront/internal/infrastructure/credstore"
	"github.com/sweetshop/storefront/internal/pkg/config"
	"github.com/sweetshop/storefront/pkg/logger"
)

// App bundles the wired core services behind the command surface.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Session   *service.SessionService
	Catalog   *service.CatalogService
	Inventory *service.InventoryService
}

// NewApp wires the whole client from environment configuration.
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	store := credstore.NewFileStore(cfg.CredentialFile)
	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, cfg.RequestsPerSecond, store, log)

	catalogCache := cache.NewCatalog()
	session := service.NewSessionService(client, store, log)
	catalog := service.NewCatalogService(client, catalogCache, log)
	inventory := service.NewInventoryService(client, catalog, catalogCache, session, cfg.ErrorSummaryWords, log)

	return &App{
		Config:    cfg,
		Logger:    log,
		Session:   session,
		Catalog:   catalog,
		Inventory: inventory,
	}, nil
}

type root struct {
	app *App
}

// NewRoot builds the storefront command tree. The app is wired lazily in
// PersistentPreRunE so that help and completion never touch the filesystem.
func NewRoot() *cobra.Command {
	r := &root{}

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse and manage the sweet shop catalog",
		Long:          "storefront is a client for the remote sweet shop: browse and search the catalog, buy sweets, and (as admin) manage stock.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			r.app = app
			return nil
		},
	}

	cmd.AddCommand(
		r.registerCmd(),
		r.loginCmd(),
		r.logoutCmd(),
		r.whoamiCmd(),
		r.listCmd(),
		r.buyCmd(),
		r.restockCmd(),
		r.createCmd(),
		r.updateCmd(),
		r.deleteCmd(),
	)
	return cmd
}
