package endpoints

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autopdf/autopdf/internal/api"
	"github.com/autopdf/autopdf/internal/generate"
	"github.com/autopdf/autopdf/internal/layout"
	"github.com/autopdf/autopdf/internal/records"
	"github.com/autopdf/autopdf/internal/svcctx"
)

// BatchRequest is the body of POST /api/generate/batch. Exactly one of
// Records and CSV carries the rows.
type BatchRequest struct {
	Records   json.RawMessage `json:"records,omitempty" swaggertype:"array,object"`
	CSV       string          `json:"csv,omitempty"`
	Template  string          `json:"template,omitempty"`
	Watermark string          `json:"watermark,omitempty"`
	Header    string          `json:"header,omitempty"`
	Footer    string          `json:"footer,omitempty"`
}

// decode turns the request into a generator request.
func (req BatchRequest) decode() (generate.BatchRequest, error) {
	hasJSON := len(req.Records) > 0 && string(req.Records) != "null"
	hasCSV := strings.TrimSpace(req.CSV) != ""

	var (
		recs []records.Record
		err  error
	)
	switch {
	case hasJSON && hasCSV:
		return generate.BatchRequest{}, &generate.InputError{Reason: "send records or csv, not both"}
	case hasJSON:
		recs, err = records.DecodeJSON(req.Records)
	case hasCSV:
		recs, err = records.DecodeCSV(strings.NewReader(req.CSV))
	}
	if err != nil {
		return generate.BatchRequest{}, err
	}

	out := generate.BatchRequest{
		Records:  recs,
		Overlays: layout.Overlays{Watermark: req.Watermark, Header: req.Header, Footer: req.Footer},
	}
	if strings.TrimSpace(req.Template) != "" {
		out.Schema = records.TemplateSchema(req.Template)
	}
	return out, nil
}

// BatchEndpoint handles POST /api/generate/batch.
type BatchEndpoint struct{}

var _ api.Endpoint = (*BatchEndpoint)(nil)

func (e *BatchEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/generate/batch", e.handler
}

func (e *BatchEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Render records to PDF
//	@Description	One card per record, each starting on a new page. Rows come from a JSON array or CSV text; an optional template with key placeholders replaces the labeled fields.
//	@Tags			generate
//	@Accept			json
//	@Produce		application/pdf
//	@Param			request	body		BatchRequest	true	"Records and overlays"
//	@Success		200		{file}		binary
//	@Header			200		{string}	X-Missing-Keys	"Template placeholders no record filled in"
//	@Failure		400		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/generate/batch [post]
func (e *BatchEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	gen := svcctx.GeneratorFrom(r.Context())
	writer := svcctx.WriterFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit(gen))
	var body BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDecodeError(w, err)
		return
	}

	req, err := body.decode()
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	res, err := gen.FromRecords(r.Context(), req)
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	data, err := writer.Bytes(res.Document)
	if err != nil {
		writeRenderError(w, r, res.ID, err)
		return
	}
	res.Commit()
	if len(res.MissingKeys) > 0 {
		w.Header().Set(HeaderMissingKeys, strings.Join(res.MissingKeys, ","))
	}
	writePDF(w, res.ID, res.Document.PageCount(), data)
}

func (e *BatchEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		input, output, template string
		body                    BatchRequest
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Render a JSON or CSV batch to PDF on the server",
		Long: `Render one card per record on the server.

The input format follows the file extension: .csv is sent as CSV text,
anything else must be a JSON array of objects.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(input)
			if err != nil {
				return err
			}
			if strings.EqualFold(filepath.Ext(input), ".csv") {
				body.CSV = string(data)
			} else {
				body.Records = data
			}
			if template != "" {
				tmpl, err := readInput(template)
				if err != nil {
					return err
				}
				body.Template = string(tmpl)
			}

			client := api.NewClient(getServerURL())
			pdf, _, err := client.PostRaw(cmd.Context(), "/api/generate/batch", body)
			if err != nil {
				return err
			}
			return savePDF(output, pdf)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "Records file, .json or .csv (- for JSON on stdin)")
	cmd.Flags().StringVarP(&output, "out", "o", "autopdf-batch.pdf", "Output PDF path")
	cmd.Flags().StringVar(&template, "template", "", "Template file with {{ key }} placeholders")
	cmd.Flags().StringVar(&body.Watermark, "watermark", "", "Watermark on every page")
	cmd.Flags().StringVar(&body.Header, "header", "", "Header on every page")
	cmd.Flags().StringVar(&body.Footer, "footer", "", "Footer on every page ({page} and {pages} are expanded)")
	return cmd
}
