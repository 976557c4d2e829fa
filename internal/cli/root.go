// Package cli implements the gdwconsole command tree. The root command
// is the composition root: it assembles settings, session store,
// transport client and config store, and tears them down on exit.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gdwatch/console/internal/api"
	"github.com/gdwatch/console/internal/config"
	"github.com/gdwatch/console/internal/logger"
	"github.com/gdwatch/console/internal/logs"
	"github.com/gdwatch/console/internal/session"
	"github.com/gdwatch/console/internal/store"
)

// App bundles the wired components for command handlers
type App struct {
	Settings *config.Config
	Session  *session.Store
	Client   *api.Client
	Store    *store.Store
	Logs     *logs.Service
	Log      logger.Logger
}

// Close tears the app down in reverse construction order
func (a *App) Close() error {
	a.Store.Reset()
	if a.Session != nil {
		if err := a.Session.Close(); err != nil {
			return err
		}
	}
	return logger.Shutdown()
}

// NewRootCmd builds the gdwconsole command tree
func NewRootCmd() *cobra.Command {
	var configPath string
	app := &App{}

	root := &cobra.Command{
		Use:           "gdwconsole",
		Short:         "Administration console for the Drive watcher service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(app, configPath)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "console settings file")

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newConfigCmd(app),
		newLogsCmd(app),
		newTriggerCmd(app),
		newNotifyTestCmd(app),
		newOAuthCmd(app),
		newStatusCmd(app),
	)

	return root
}

func setup(app *App, configPath string) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load console settings: %w", err)
	}
	app.Settings = settings

	if err := logger.Init(logger.Config{
		Level:  logger.ParseLevel(settings.Log.Level),
		Format: logger.ParseFormat(settings.Log.Format),
		File: logger.FileConfig{
			Enabled:    settings.Log.FileEnabled,
			Path:       settings.LogFilePath(),
			MaxSizeMB:  settings.Log.MaxSizeMB,
			MaxAgeDays: settings.Log.MaxAgeDays,
		},
	}); err != nil {
		return err
	}
	app.Log = logger.Get()

	sess, err := session.Open(settings.StateDir)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	app.Session = sess

	client := api.New(settings.BackendURL, sess, app.Log)
	client.SetTimeout(settings.RequestTimeout)
	app.Client = client

	app.Store = store.New(client, app.Log)
	app.Logs = logs.NewService(client)

	// Auth rejection anywhere tears the whole session down, the CLI
	// analogue of the web console's forced reload.
	client.OnUnauthorized(func() {
		app.Store.Reset()
		if err := sess.Logout(); err != nil {
			app.Log.Error("failed to tear down session", "error", err)
		}
		fmt.Fprintln(os.Stderr, "session expired; please run 'gdwconsole login' again")
	})

	return nil
}

// Execute runs the command tree
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// requireConfig loads the configuration into the store if it is not
// loaded yet. Most config subcommands need it.
func requireConfig(cmd *cobra.Command, app *App) error {
	if app.Store.Loaded() {
		return nil
	}
	if err := app.Store.Load(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch configuration: %w", err)
	}
	return nil
}
