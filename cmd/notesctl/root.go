package main

import (
	"fmt"
	"log/slog"
	"os"

	"colornotes/client"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:5001"

var (
	apiURL  string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notesctl",
	Short: "Create, edit and color notes from the terminal",
	Long: `notesctl talks to the notes API. Run "notesctl tui" for the interactive
note form, or use the list/add/edit/delete subcommands from scripts.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "notes API base URL (default $NOTES_API_URL or "+defaultAPIURL+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// resolveAPIURL applies flag > environment > default.
func resolveAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if env := os.Getenv("NOTES_API_URL"); env != "" {
		return env
	}
	return defaultAPIURL
}

func newClient() (*client.Client, error) {
	url := resolveAPIURL()
	slog.Debug("Using notes API", "url", url)
	return client.New(url)
}
