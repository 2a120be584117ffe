// Package cli wires the resource controllers to a scriptable command tree.
// Every subcommand runs one controller operation against the content API and
// exits; the controller owns the protocol, the CLI only parses arguments and
// renders state.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/debemdeboas/site-admin/internal/api"
	"github.com/debemdeboas/site-admin/internal/attachment"
	"github.com/debemdeboas/site-admin/internal/config"
	"github.com/debemdeboas/site-admin/internal/controller"
	"github.com/debemdeboas/site-admin/internal/draftstore"
	"github.com/debemdeboas/site-admin/internal/logger"
	"github.com/debemdeboas/site-admin/internal/render"
	"github.com/debemdeboas/site-admin/internal/schema"
	"github.com/debemdeboas/site-admin/internal/storage"
)

type App struct {
	ConfigPath string

	cfg      *config.Config
	client   *api.Client
	previews *attachment.TempAllocator
	resolver storage.Resolver
	drafts   draftstore.Store
	log      zerolog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "site-admin",
		Short:        "Manage the site's content resources from the terminal",
		SilenceUsage: true,
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.initialize()
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		app.shutdown()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "config.yaml", "Path to the configuration file")

	cmd.AddCommand(newResourcesCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newPreviewCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newSubCmd(app))
	cmd.AddCommand(newDraftsCmd(app))

	return cmd
}

func (app *App) initialize() error {
	if err := config.LoadConfig(app.ConfigPath); err != nil {
		return err
	}
	app.cfg = config.AppConfig

	app.log = logger.New(app.cfg.Logging.Level)
	config.SetLogger(app.log)
	api.SetLogger(app.log)
	storage.SetLogger(app.log)
	draftstore.SetLogger(app.log)
	render.SetLogger(app.log)

	app.client = api.NewClient(app.cfg.API.BaseURL, app.cfg.API.Token(), app.cfg.API.Timeout())

	previews, err := attachment.NewTempAllocator("")
	if err != nil {
		return fmt.Errorf("init preview scratch dir: %w", err)
	}
	app.previews = previews

	switch app.cfg.Storage.Mode {
	case "s3":
		s3cfg := app.cfg.Storage.S3
		app.resolver, err = storage.NewS3Resolver(
			envValue(s3cfg.AccessKeyIDEnv),
			envValue(s3cfg.AccessKeySecretEnv),
			s3cfg.Endpoint,
			s3cfg.Bucket,
		)
		if err != nil {
			return err
		}
	default:
		app.resolver = storage.NewStaticResolver(app.cfg.Storage.BaseURL)
	}

	if app.cfg.Drafts.Enabled {
		switch app.cfg.Drafts.Backend {
		case "memory":
			app.drafts = draftstore.NewMemoryStore()
		default:
			app.drafts, err = draftstore.NewSQLiteStore(app.cfg.Drafts.Path)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (app *App) shutdown() {
	if app.drafts != nil {
		if err := app.drafts.Close(); err != nil {
			app.log.Warn().Err(err).Msg("Closing draft store failed")
		}
	}
	if app.previews != nil {
		if err := app.previews.Close(); err != nil {
			app.log.Warn().Err(err).Msg("Removing preview scratch dir failed")
		}
	}
}

// lookupSchema resolves a resource argument against the registry.
func lookupSchema(name string) (*schema.Schema, error) {
	s, ok := schema.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown resource %q, see 'site-admin resources'", name)
	}
	return s, nil
}

func (app *App) newController(s *schema.Schema) *controller.Controller {
	return controller.New(s, s.Path, app.client, app.previews, app.log)
}
