package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/autopdf/autopdf/internal/api"
	"github.com/autopdf/autopdf/internal/config"
	"github.com/autopdf/autopdf/internal/home"
	"github.com/autopdf/autopdf/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "autopdf",
	Short: "Lay out text and records as paginated PDF documents",
	Long: `autopdf turns plain text into fixed-size PDF pages.

Free text is wrapped and flowed onto pages. Text made of Name:, Title:,
Date: and Details: blocks, JSON record arrays and CSV rows become one
card per record, each on its own page. Watermark, header and footer
marks can be added to every page.

Documents can be produced locally (autopdf generate, autopdf batch) or
through the HTTP server (autopdf serve, autopdf api ...).`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.autopdf/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "autopdf home directory (default: ~/.autopdf)",
	)
	rootCmd.PersistentFlags().StringVar(
		&outputFormat, "output", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn or error",
	)

	// Run the root hook as well as the api --wait hook
	cobra.EnableTraverseRunHooks = true

	// Validate the output format before any command runs
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the command logger from --log-level.
func newLogger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

// openHome resolves the home directory and creates it if needed.
func openHome() (*home.Dir, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, err
	}
	return h, nil
}

// loadConfig reads --config, or the home config file when it exists.
func loadConfig(h *home.Dir, logger *slog.Logger) (*config.Manager, error) {
	path := cfgFile
	if path == "" && h.ConfigExists() {
		path = h.ConfigPath()
	}
	mgr, err := config.NewManager(path)
	if err != nil {
		return nil, err
	}
	mgr.SetLogger(logger)
	return mgr, nil
}
