package endpoints

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/autopdf/autopdf/internal/api"
	"github.com/autopdf/autopdf/internal/generate"
	"github.com/autopdf/autopdf/internal/layout"
	"github.com/autopdf/autopdf/internal/render"
	"github.com/autopdf/autopdf/internal/svcctx"
)

// GenerateRequest is the body of POST /api/generate and POST /api/layout.
type GenerateRequest struct {
	Text      string `json:"text"`
	Title     string `json:"title,omitempty"`
	Watermark string `json:"watermark,omitempty"`
	Header    string `json:"header,omitempty"`
	Footer    string `json:"footer,omitempty"`
}

func (req GenerateRequest) overlays() layout.Overlays {
	return layout.Overlays{Watermark: req.Watermark, Header: req.Header, Footer: req.Footer}
}

func (req GenerateRequest) textRequest() generate.TextRequest {
	return generate.TextRequest{Text: req.Text, Title: req.Title, Overlays: req.overlays()}
}

// bodyLimit bounds a request body. JSON escaping can grow text up to six
// times, plus room for the other fields.
func bodyLimit(gen *generate.Service) int64 {
	return int64(gen.Settings().Limits.MaxInputBytes)*6 + 64<<10
}

// decodeGenerateRequest reads a JSON body, or form fields when the request
// is a form post.
func decodeGenerateRequest(w http.ResponseWriter, r *http.Request, limit int64) (GenerateRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		var err error
		if mediaType == "multipart/form-data" {
			err = r.ParseMultipartForm(limit)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return GenerateRequest{}, err
		}
		return GenerateRequest{
			Text:      r.FormValue("text"),
			Title:     r.FormValue("title"),
			Watermark: r.FormValue("watermark"),
			Header:    r.FormValue("header"),
			Footer:    r.FormValue("footer"),
		}, nil
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return GenerateRequest{}, err
	}
	return req, nil
}

// writeDecodeError answers a body that could not be read.
func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return
	}
	writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
}

// GenerateEndpoint handles POST /api/generate.
type GenerateEndpoint struct{}

var _ api.Endpoint = (*GenerateEndpoint)(nil)

func (e *GenerateEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/generate", e.handler
}

func (e *GenerateEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Render text to PDF
//	@Description	Lays out free text, or Name/Title/Date/Details blocks as cards, and returns the PDF
//	@Tags			generate
//	@Accept			json
//	@Accept			x-www-form-urlencoded
//	@Produce		application/pdf
//	@Param			request	body		GenerateRequest	true	"Text and overlays"
//	@Success		200		{file}		binary
//	@Failure		400		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/generate [post]
func (e *GenerateEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	gen := svcctx.GeneratorFrom(r.Context())
	writer := svcctx.WriterFrom(r.Context())

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

	data, err := writer.Bytes(res.Document)
	if err != nil {
		writeRenderError(w, r, res.ID, err)
		return
	}
	res.Commit()
	writePDF(w, res.ID, res.Document.PageCount(), data)
}

func (e *GenerateEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		input, output string
		req           GenerateRequest
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a text file to PDF on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(input)
			if err != nil {
				return err
			}
			req.Text = string(data)

			client := api.NewClient(getServerURL())
			pdf, _, err := client.PostRaw(cmd.Context(), "/api/generate", req)
			if err != nil {
				return err
			}
			return savePDF(output, pdf)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "Input text file (- for stdin)")
	cmd.Flags().StringVarP(&output, "out", "o", "autopdf.pdf", "Output PDF path")
	addOverlayFlags(cmd, &req)
	return cmd
}

func addOverlayFlags(cmd *cobra.Command, req *GenerateRequest) {
	cmd.Flags().StringVar(&req.Title, "title", "", "Title heading on the first page")
	cmd.Flags().StringVar(&req.Watermark, "watermark", "", "Watermark on every page")
	cmd.Flags().StringVar(&req.Header, "header", "", "Header on every page")
	cmd.Flags().StringVar(&req.Footer, "footer", "", "Footer on every page ({page} and {pages} are expanded)")
}

// readInput reads path, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// savePDF writes a PDF received from the server and reports its page count.
func savePDF(path string, pdf []byte) error {
	pages, err := render.PageCount(bytes.NewReader(pdf))
	if err != nil {
		return fmt.Errorf("server returned an unreadable pdf: %w", err)
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return api.OutputFile(path, pages, "")
}
