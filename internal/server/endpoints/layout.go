package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/autopdf/autopdf/internal/api"
	"github.com/autopdf/autopdf/internal/generate"
	"github.com/autopdf/autopdf/internal/layout"
	"github.com/autopdf/autopdf/internal/svcctx"
)

// LayoutResponse is the abstract document produced for a request.
type LayoutResponse struct {
	ID       string           `json:"id" yaml:"id"`
	Kind     generate.Kind    `json:"kind" yaml:"kind"`
	Title    string           `json:"title,omitempty" yaml:"title,omitempty"`
	Records  int              `json:"records" yaml:"records"`
	Pages    int              `json:"pages" yaml:"pages"`
	Document *layout.Document `json:"document" yaml:"document"`
}

// LayoutEndpoint handles POST /api/layout.
type LayoutEndpoint struct{}

var _ api.Endpoint = (*LayoutEndpoint)(nil)

func (e *LayoutEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/layout", e.handler
}

func (e *LayoutEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Lay out text without rendering
//	@Description	Same input as /api/generate; returns the positioned pages as JSON
//	@Tags			generate
//	@Accept			json
//	@Produce		json
//	@Param			request	body		GenerateRequest	true	"Text and overlays"
//	@Success		200		{object}	LayoutResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/layout [post]
func (e *LayoutEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	gen := svcctx.GeneratorFrom(r.Context())

	req, err := decodeGenerateRequest(w, r, bodyLimit(gen))
	if err != nil {
		writeDecodeError(w, err)
		return
	}

	res, err := gen.FromText(r.Context(), req.textRequest())
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	res.Commit()
	writeJSON(w, http.StatusOK, LayoutResponse{
		ID:       res.ID,
		Kind:     res.Kind,
		Title:    res.Title,
		Records:  res.Records,
		Pages:    res.Document.PageCount(),
		Document: res.Document,
	})
}

func (e *LayoutEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		input string
		req   GenerateRequest
	)
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show the page layout of a text file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(input)
			if err != nil {
				return err
			}
			req.Text = string(data)

			client := api.NewClient(getServerURL())
			var resp LayoutResponse
			if err := client.Post(cmd.Context(), "/api/layout", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "Input text file (- for stdin)")
	addOverlayFlags(cmd, &req)
	return cmd
}
