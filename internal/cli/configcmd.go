package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gdwatch/console/internal/domain"
	"github.com/gdwatch/console/internal/store"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the watcher configuration",
	}

	cmd.AddCommand(
		newConfigShowCmd(app),
		newConfigSetCmd(app),
		newConfigSaveCmd(app),
		newConfigReloadCmd(app),
	)

	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfig(cmd, app); err != nil {
				return err
			}

			data, err := json.MarshalIndent(app.Store.Value(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Change one configuration field in memory",
		Long: "Changes one configuration field in the in-memory copy. " +
			"Nothing is persisted until 'config save'. Run 'config set' " +
			"without arguments to list the editable fields.",
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, f := range editableFields() {
					fmt.Println(f)
				}
				return nil
			}
			if len(args) != 2 {
				return fmt.Errorf("expected <field> <value>")
			}

			if err := requireConfig(cmd, app); err != nil {
				return err
			}

			update, err := buildUpdate(app, args[0], args[1])
			if err != nil {
				return err
			}

			app.Store.Apply(update)
			fmt.Printf("%s = %s (unsaved)\n", args[0], args[1])
			return nil
		},
	}
}

func newConfigSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Persist the in-memory configuration to the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfig(cmd, app); err != nil {
				return err
			}
			if err := app.Store.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Configuration saved")
			return nil
		},
	}
}

func newConfigReloadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Discard local edits and re-fetch from the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.Load(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Configuration reloaded")
			return nil
		},
	}
}

func editableFields() []string {
	return []string{
		"auth.username",
		"auth.password",
		"oauth.client_id",
		"oauth.client_secret",
		"oauth.redirect_uri",
		"advanced.debounce_seconds",
		"advanced.log_dir",
		"advanced.log_level",
		"advanced.log_save_enabled",
		"advanced.log_cleanup.enabled",
		"advanced.log_cleanup.retention_days",
		"advanced.log_cleanup.cron",
		"server.port",
		"server.public_url",
		"server.webhook_path",
		"server.tls.enabled",
		"server.tls.cert_path",
		"server.tls.key_path",
		"google.qps",
		"google.personal_drive_name",
		"google.list_delay",
		"google.batch_sleep_interval",
		"symedia.host",
		"symedia.endpoint",
		"symedia.body_template",
		"symedia.notify_unmatched",
	}
}

// buildUpdate maps a field name onto one of the store's typed updates.
// The set of names is closed; unknown fields are rejected rather than
// walked dynamically.
func buildUpdate(app *App, field, value string) (store.Update, error) {
	cfg := app.Store.Value()
	if cfg == nil {
		return nil, domain.ErrNotLoaded
	}

	switch field {
	case "auth.username":
		v := cfg.Auth
		v.Username = value
		return store.SetAuth{Value: v}, nil
	case "auth.password":
		v := cfg.Auth
		v.Password = value
		return store.SetAuth{Value: v}, nil

	case "oauth.client_id":
		v := cfg.OAuth
		v.ClientID = value
		return store.SetOAuth{Value: v}, nil
	case "oauth.client_secret":
		v := cfg.OAuth
		v.ClientSecret = value
		return store.SetOAuth{Value: v}, nil
	case "oauth.redirect_uri":
		v := cfg.OAuth
		v.RedirectURI = value
		return store.SetOAuth{Value: v}, nil

	case "advanced.debounce_seconds":
		n, err := parseInt(field, value)
		if err != nil {
			return nil, err
		}
		v := cfg.Advanced
		v.DebounceSeconds = n
		return store.SetAdvanced{Value: v}, nil
	case "advanced.log_dir":
		v := cfg.Advanced
		v.LogDir = value
		return store.SetAdvanced{Value: v}, nil
	case "advanced.log_level":
		n, err := parseInt(field, value)
		if err != nil {
			return nil, err
		}
		v := cfg.Advanced
		v.LogLevel = n
		return store.SetAdvanced{Value: v}, nil
	case "advanced.log_save_enabled":
		b, err := parseBool(field, value)
		if err != nil {
			return nil, err
		}
		v := cfg.Advanced
		v.LogSaveEnabled = b
		return store.SetAdvanced{Value: v}, nil

	case "advanced.log_cleanup.enabled":
		b, err := parseBool(field, value)
		if err != nil {
			return nil, err
		}
		return store.SetLogCleanupEnabled{Value: b}, nil
	case "advanced.log_cleanup.retention_days":
		n, err := parseInt(field, value)
		if err != nil {
			return nil, err
		}
		v := cfg.Advanced.LogCleanup
		v.RetentionDays = n
		return store.SetLogCleanup{Value: v}, nil
	case "advanced.log_cleanup.cron":
		v := cfg.Advanced.LogCleanup
		v.Cron = value
		return store.SetLogCleanup{Value: v}, nil

	case "server.port":
		n, err := parseInt(field, value)
		if err != nil {
			return nil, err
		}
		v := cfg.Server
		v.Port = n
		return store.SetServer{Value: v}, nil
	case "server.public_url":
		v := cfg.Server
		v.PublicURL = value
		return store.SetServer{Value: v}, nil
	case "server.webhook_path":
		v := cfg.Server
		v.WebhookPath = value
		return store.SetServer{Value: v}, nil

	case "server.tls.enabled":
		b, err := parseBool(field, value)
		if err != nil {
			return nil, err
		}
		v := cfg.Server.TLS
		v.Enabled = b
		return store.SetTLS{Value: v}, nil
	case "server.tls.cert_path":
		v := cfg.Server.TLS
		v.CertPath = value
		return store.SetTLS{Value: v}, nil
	case "server.tls.key_path":
		v := cfg.Server.TLS
		v.KeyPath = value
		return store.SetTLS{Value: v}, nil

	case "google.qps":
		n, err := parseInt(field, value)
		if err != nil {
			return nil, err
		}
		v := cfg.Google
		v.QPS = n
		return store.SetGoogle{Value: v}, nil
	case "google.personal_drive_name":
		v := cfg.Google
		v.PersonalDriveName = value
		return store.SetGoogle{Value: v}, nil
	case "google.list_delay":
		n, err := parseInt(field, value)
		if err != nil {
			return nil, err
		}
		v := cfg.Google
		v.ListDelay = n
		return store.SetGoogle{Value: v}, nil
	case "google.batch_sleep_interval":
		n, err := parseInt(field, value)
		if err != nil {
			return nil, err
		}
		v := cfg.Google
		v.BatchSleepInterval = n
		return store.SetGoogle{Value: v}, nil

	case "symedia.host":
		v := cfg.Symedia
		v.Host = value
		return store.SetSymedia{Value: v}, nil
	case "symedia.endpoint":
		v := cfg.Symedia
		v.Endpoint = value
		return store.SetSymedia{Value: v}, nil
	case "symedia.body_template":
		return store.SetBodyTemplate{Value: value}, nil
	case "symedia.notify_unmatched":
		b, err := parseBool(field, value)
		if err != nil {
			return nil, err
		}
		v := cfg.Symedia
		v.NotifyUnmatched = b
		return store.SetSymedia{Value: v}, nil
	}

	return nil, fmt.Errorf("unknown field %q; run 'config set' to list fields", field)
}

func parseInt(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s expects an integer, got %q", field, value)
	}
	return n, nil
}

func parseBool(field, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s expects true or false, got %q", field, value)
	}
	return b, nil
}
