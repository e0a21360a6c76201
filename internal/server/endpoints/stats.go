package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/autopdf/autopdf/internal/api"
	"github.com/autopdf/autopdf/internal/svcctx"
	"github.com/autopdf/autopdf/internal/usage"
)

// StatsEndpoint handles GET /api/stats.
type StatsEndpoint struct{}

var _ api.Endpoint = (*StatsEndpoint)(nil)

func (e *StatsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/stats", e.handler
}

func (e *StatsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Usage counters
//	@Description	Documents, units and pages produced since the counters were created
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	usage.Snapshot
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/stats [get]
func (e *StatsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.UsageFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "usage store not initialized")
		return
	}
	writeJSON(w, http.StatusOK, store.Snapshot())
}

func (e *StatsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show usage counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp usage.Snapshot
			if err := client.Get(cmd.Context(), "/api/stats", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
