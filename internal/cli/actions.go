package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gdwatch/console/internal/oauth"
)

func newTriggerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Fire one of the backend's operational actions",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "sync",
			Short: "Run an incremental sync now",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Client.TriggerSync(cmd.Context()); err != nil {
					return err
				}
				fmt.Println("Sync triggered")
				return nil
			},
		},
		&cobra.Command{
			Use:   "full",
			Short: "Run a full rclone refresh",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Client.TriggerFullRefresh(cmd.Context()); err != nil {
					return err
				}
				fmt.Println("Full refresh triggered")
				return nil
			},
		},
		&cobra.Command{
			Use:   "tree",
			Short: "Rebuild the backend's file tree cache",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Client.RebuildIndex(cmd.Context()); err != nil {
					return err
				}
				fmt.Println("Tree rebuild triggered")
				return nil
			},
		},
	)

	return cmd
}

func newNotifyTestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "notify-test <path>",
		Short: "Send a test media notification for a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Client.TestNotification(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Test notification sent")
			return nil
		},
	}
}

func newOAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oauth",
		Short: "Google Drive authorization helpers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "url",
		Short: "Print the Google consent URL for the watcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfig(cmd, app); err != nil {
				return err
			}

			url, err := oauth.ConsentURL(cmd.Context(), app.Client, app.Store.Value().OAuth)
			if err != nil {
				return err
			}
			fmt.Println(url)
			return nil
		},
	})

	return cmd
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the backend's status snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Client.FetchStatus(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Status:     %s\n", s.Status)
			fmt.Printf("Uptime:     %s\n", s.UptimeDisplay)
			fmt.Printf("Started:    %s\n", s.StartTime)
			fmt.Printf("Tasks:      %d today, %d total\n", s.TodayCompleted, s.HistoryCompleted)
			fmt.Printf("Goroutines: %d\n", s.Goroutines)
			return nil
		},
	}
}
