package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/autopdf/autopdf/internal/batch"
	"github.com/autopdf/autopdf/internal/generate"
	"github.com/autopdf/autopdf/internal/records"
	"github.com/autopdf/autopdf/internal/svcctx"
)

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// statusFor maps a generation error to an HTTP status. Anything caused by
// the request is a 400; the rest, including a degenerate configured
// geometry, is a 500.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, generate.ErrInput),
		errors.Is(err, batch.ErrEmptyBatch),
		errors.Is(err, batch.ErrTooManyRecords),
		errors.Is(err, records.ErrDecode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeGenerateError writes err with the status statusFor picks.
func writeGenerateError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

// writeRenderError answers a document that laid out but failed to render.
func writeRenderError(w http.ResponseWriter, r *http.Request, id string, err error) {
	svcctx.LoggerFrom(r.Context()).Error("failed to render pdf", "id", id, "error", err)
	writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render pdf: %v", err))
}

// writePDF sends a rendered document.
func writePDF(w http.ResponseWriter, id string, pages int, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="autopdf-%s.pdf"`, id))
	w.Header().Set(HeaderDocumentID, id)
	w.Header().Set(HeaderPageCount, fmt.Sprint(pages))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Response headers set on PDF responses.
const (
	HeaderDocumentID = "X-Document-Id"
	HeaderPageCount  = "X-Page-Count"

	// HeaderMissingKeys lists template placeholders no record filled in.
	HeaderMissingKeys = "X-Missing-Keys"
)
