package api

import (
	"net/http"

	"github.com/spf13/cobra"
)

// Endpoint pairs an HTTP handler with the cobra command that calls it, so
// the server and the "autopdf api" tree are built from the same list.
type Endpoint interface {
	// Route is the method, path and handler mounted on the server mux.
	Route() (method, path string, handler http.HandlerFunc)

	// RequiresInit marks handlers that need the generator and PDF writer.
	// The server answers 503 for them until startup has finished.
	RequiresInit() bool

	// Command builds the client side. serverURL is resolved when the
	// command runs, after flags are parsed.
	Command(serverURL func() string) *cobra.Command
}

// Route describes one registered HTTP route.
type Route struct {
	Method string `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"`
	Init   bool   `json:"requires_init,omitempty" yaml:"requires_init,omitempty"`
}

// Pattern is the ServeMux pattern for the route.
func (r Route) Pattern() string { return r.Method + " " + r.Path }

// RouteOf describes ep without its handler.
func RouteOf(ep Endpoint) Route {
	method, path, _ := ep.Route()
	return Route{Method: method, Path: path, Init: ep.RequiresInit()}
}
