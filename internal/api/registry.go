package api

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

// Registry is the ordered set of endpoints served by one server.
type Registry struct {
	endpoints []Endpoint
	patterns  map[string]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{patterns: make(map[string]bool)}
}

// Register appends ep. Registering the same method and path twice panics,
// matching http.ServeMux.
func (r *Registry) Register(ep Endpoint) {
	p := RouteOf(ep).Pattern()
	if r.patterns[p] {
		panic(fmt.Sprintf("api: route %s registered twice", p))
	}
	r.patterns[p] = true
	r.endpoints = append(r.endpoints, ep)
}

// RegisterRoutes mounts every endpoint on mux. Handlers of endpoints that
// need a started server are passed through gate first.
func (r *Registry) RegisterRoutes(mux *http.ServeMux, gate func(http.HandlerFunc) http.HandlerFunc) {
	for _, ep := range r.endpoints {
		_, _, handler := ep.Route()
		route := RouteOf(ep)
		if route.Init {
			handler = gate(handler)
		}
		mux.HandleFunc(route.Pattern(), handler)
	}
}

// Routes lists the registered routes sorted by path, then method.
func (r *Registry) Routes() []Route {
	routes := make([]Route, len(r.endpoints))
	for i, ep := range r.endpoints {
		routes[i] = RouteOf(ep)
	}
	sort.Slice(routes, func(i, j int) bool {
		a, b := routes[i], routes[j]
		if a.Path == b.Path {
			return a.Method < b.Method
		}
		return a.Path < b.Path
	})
	return routes
}

// BuildCommands returns the "api" command with one subcommand per endpoint
// that has a client side. With --wait every subcommand first polls /ready.
func (r *Registry) BuildCommands(serverURL func() string) *cobra.Command {
	var wait time.Duration

	apiCmd := &cobra.Command{
		Use:   "api",
		Short: "Call a running autopdf server",
		Long: `Subcommands of api talk to "autopdf serve" over HTTP.

Point them at another server with --server. Pass --wait to retry until
the server reports ready.

Examples:
  autopdf api health                          # Check server health
  autopdf api generate -i notes.txt -o a.pdf  # Render text remotely
  autopdf api stats                           # Show usage counters`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if wait <= 0 {
				return nil
			}
			return NewClient(serverURL()).WaitReady(cmd.Context(), wait)
		},
	}
	apiCmd.PersistentFlags().DurationVar(&wait, "wait", 0, "How long to wait for the server to become ready")

	for _, ep := range r.endpoints {
		if cmd := ep.Command(serverURL); cmd != nil {
			apiCmd.AddCommand(cmd)
		}
	}
	return apiCmd
}

// Endpoints returns the endpoints in registration order.
func (r *Registry) Endpoints() []Endpoint {
	return r.endpoints
}
