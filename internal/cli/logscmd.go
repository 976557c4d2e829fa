package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "View and clear the backend's logs",
	}

	cmd.AddCommand(
		newLogsShowCmd(app),
		newLogsClearCmd(app),
	)

	return cmd
}

func newLogsShowCmd(app *App) *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the backend's in-memory log lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Logs.Fetch(cmd.Context())
			if err != nil {
				return err
			}

			for _, e := range entries {
				if level != "" && e.Level != level {
					continue
				}
				if e.Time != "" {
					fmt.Printf("[%s] %-5s %s\n", e.Time, e.Level, e.Content)
				} else {
					fmt.Printf("%-5s %s\n", e.Level, e.Content)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "only show entries of this level (info, warn, error, debug)")
	return cmd
}

func newLogsClearCmd(app *App) *cobra.Command {
	var files bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the backend's in-memory log buffer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Logs.ClearMemory(cmd.Context()); err != nil {
				return err
			}
			if files {
				if err := app.Logs.ClearFiles(cmd.Context()); err != nil {
					return err
				}
			}
			fmt.Println("Logs cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&files, "files", false, "also delete persisted log files")
	return cmd
}
