package main

import (
	"github.com/spf13/cobra"

	"github.com/autopdf/autopdf/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the autopdf server",
	Long: `Start the autopdf HTTP server.

The config file is watched: layout, overlay and limit changes apply to
the next request without a restart. Usage counters are kept in
~/.autopdf/stats.yaml across restarts.

The server provides:
  - /health              - Basic server health check
  - /ready               - Readiness check
  - /status              - Active settings and usage counters
  - /api/generate        - Text to PDF
  - /api/generate/batch  - Records (JSON or CSV) to PDF
  - /api/layout          - Text to positioned pages as JSON
  - /api/stats           - Usage counters
  - /swagger.json        - OpenAPI document

Examples:
  autopdf serve                    # Start on the configured port (8080)
  autopdf serve --port 3000        # Start on custom port
  autopdf serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logger, err := newLogger()
		if err != nil {
			return err
		}

		h, err := openHome()
		if err != nil {
			return err
		}

		mgr, err := loadConfig(h, logger)
		if err != nil {
			return err
		}
		mgr.WatchConfig()

		host, port := mgr.Get().Server.Host, mgr.Get().Server.Port
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			Home:          h,
			ConfigManager: mgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to (overrides server.host)")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on (overrides server.port)")

	rootCmd.AddCommand(serveCmd)
}
