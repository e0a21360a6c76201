package main

import (
	"os"

	"github.com/autopdf/autopdf/internal/server/endpoints"
)

// serverEnv overrides the default --server value.
const serverEnv = "AUTOPDF_SERVER"

var serverURL string

func defaultServerURL() string {
	if u := os.Getenv(serverEnv); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func init() {
	apiCmd := endpoints.NewRegistry().BuildCommands(func() string { return serverURL })
	apiCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServerURL(),
		"autopdf server to call (env "+serverEnv+")")
	rootCmd.AddCommand(apiCmd)
}
