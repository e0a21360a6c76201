package endpoints

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/autopdf/autopdf/internal/api"
	"github.com/autopdf/autopdf/internal/layout"
	"github.com/autopdf/autopdf/internal/svcctx"
	"github.com/autopdf/autopdf/internal/usage"
)

// HealthResponse answers /health and /ready. Generator is "ok" once the
// generator and PDF writer are attached.
type HealthResponse struct {
	Status    string `json:"status"`
	Generator string `json:"generator,omitempty"`
}

// HealthEndpoint answers 200 whenever the process is serving.
type HealthEndpoint struct{}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return http.MethodGet, "/health", e.handler
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary	Liveness check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health [get]
func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/health", &resp); err != nil {
				return err
			}
			fmt.Printf("Status: %s\n", resp.Status)
			return nil
		},
	}
}

// ReadyEndpoint answers 200 only when documents can be generated.
type ReadyEndpoint struct{}

func (e *ReadyEndpoint) Route() (string, string, http.HandlerFunc) {
	return http.MethodGet, "/ready", e.handler
}

func (e *ReadyEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary	Readiness check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Failure	503	{object}	HealthResponse
//	@Router		/ready [get]
func (e *ReadyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	if svcctx.GeneratorFrom(r.Context()) == nil || svcctx.WriterFrom(r.Context()) == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Generator: "not_initialized"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Generator: "ok"})
}

func (e *ReadyEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "Check server readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/ready", &resp); err != nil {
				return err
			}
			fmt.Printf("Status:    %s\n", resp.Status)
			if resp.Generator != "" {
				fmt.Printf("Generator: %s\n", resp.Generator)
			}
			return nil
		},
	}
}

// StatusResponse is the effective configuration plus usage counters.
type StatusResponse struct {
	Server     string          `json:"server" yaml:"server"`
	ConfigFile string          `json:"config_file,omitempty" yaml:"config_file,omitempty"`
	Home       string          `json:"home,omitempty" yaml:"home,omitempty"`
	Layout     LayoutStatus    `json:"layout" yaml:"layout"`
	Overlays   layout.Overlays `json:"overlays" yaml:"overlays"`
	Limits     LimitsStatus    `json:"limits" yaml:"limits"`
	Usage      *usage.Snapshot `json:"usage,omitempty" yaml:"usage,omitempty"`
}

// LayoutStatus summarizes the active page geometry.
type LayoutStatus struct {
	Geometry     layout.Geometry `json:"geometry" yaml:"geometry"`
	LinesPerPage int             `json:"lines_per_page" yaml:"lines_per_page"`
}

// LimitsStatus shows the request limits in force.
type LimitsStatus struct {
	MaxRecords    int `json:"max_records_per_batch" yaml:"max_records_per_batch"`
	MaxInputBytes int `json:"max_input_bytes" yaml:"max_input_bytes"`
}

// StatusEndpoint reports what the server is running with.
type StatusEndpoint struct{}

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return http.MethodGet, "/status", e.handler
}

func (e *StatusEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Server status
//	@Description	Active layout settings, limits and usage counters
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Router			/status [get]
func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{Server: "running"}

	if gen := svcctx.GeneratorFrom(r.Context()); gen != nil {
		settings := gen.Settings()
		resp.Layout = LayoutStatus{
			Geometry:     settings.Geometry,
			LinesPerPage: layout.LinesPerPage(settings.Geometry),
		}
		resp.Overlays = settings.Overlays
		resp.Limits = LimitsStatus{
			MaxRecords:    settings.Limits.MaxRecords,
			MaxInputBytes: settings.Limits.MaxInputBytes,
		}
	}
	if cm := svcctx.ConfigManagerFrom(r.Context()); cm != nil {
		resp.ConfigFile = cm.ConfigFile()
	}
	if h := svcctx.HomeFrom(r.Context()); h != nil {
		resp.Home = h.Path()
	}
	if store := svcctx.UsageFrom(r.Context()); store != nil {
		snap := store.Snapshot()
		resp.Usage = &snap
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp StatusResponse
			if err := client.Get(cmd.Context(), "/status", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
