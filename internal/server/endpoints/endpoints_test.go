package endpoints

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/autopdf/autopdf/internal/batch"
	"github.com/autopdf/autopdf/internal/generate"
	"github.com/autopdf/autopdf/internal/layout"
	"github.com/autopdf/autopdf/internal/records"
	"github.com/autopdf/autopdf/internal/render"
	"github.com/autopdf/autopdf/internal/svcctx"
	"github.com/autopdf/autopdf/internal/usage"
)

func newTestServices(t *testing.T) *svcctx.Services {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := usage.NewStore("")
	gen := generate.New(generate.Config{
		Settings: generate.Settings{
			Geometry: layout.A4(),
			Limits:   generate.Limits{MaxRecords: 82, MaxInputBytes: 4096},
		},
		Observer: store,
		Logger:   logger,
	})
	return &svcctx.Services{
		Generator: gen,
		Writer:    render.NewWriter(render.Config{Logger: logger}),
		Usage:     store,
		Logger:    logger,
	}
}

// newTestHandler routes every endpoint with svc in the request context.
// A nil svc leaves the context empty.
func newTestHandler(svc *svcctx.Services) http.Handler {
	mux := http.NewServeMux()
	NewRegistry().RegisterRoutes(mux, func(h http.HandlerFunc) http.HandlerFunc { return h })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if svc != nil {
			r = r.WithContext(svcctx.WithServices(r.Context(), svc))
		}
		mux.ServeHTTP(w, r)
	})
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func lines(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "line %d\n", i+1)
	}
	return b.String()
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp.Error
}

func assertPDF(t *testing.T, rec *httptest.ResponseRecorder, wantPages int) {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get(HeaderDocumentID) == "" {
		t.Error("missing document id header")
	}
	if got := rec.Header().Get(HeaderPageCount); got != fmt.Sprint(wantPages) {
		t.Errorf("%s = %q, want %d", HeaderPageCount, got, wantPages)
	}
	pages, err := render.PageCount(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if pages != wantPages {
		t.Errorf("pdf pages = %d, want %d", pages, wantPages)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("health", func(t *testing.T) {
		rec := get(newTestHandler(nil), "/health")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var resp HealthResponse
		json.NewDecoder(rec.Body).Decode(&resp)
		if resp.Status != "ok" {
			t.Errorf("status = %q", resp.Status)
		}
	})

	t.Run("ready without services", func(t *testing.T) {
		rec := get(newTestHandler(nil), "/ready")
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})

	t.Run("ready", func(t *testing.T) {
		rec := get(newTestHandler(newTestServices(t)), "/ready")
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("status", func(t *testing.T) {
		rec := get(newTestHandler(newTestServices(t)), "/status")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var resp StatusResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Layout.LinesPerPage != layout.LinesPerPage(layout.A4()) {
			t.Errorf("lines_per_page = %d", resp.Layout.LinesPerPage)
		}
		if resp.Limits.MaxRecords != 82 || resp.Limits.MaxInputBytes != 4096 {
			t.Errorf("limits = %+v", resp.Limits)
		}
		if resp.Usage == nil {
			t.Error("usage missing")
		}
	})
}

func TestGenerateEndpoint(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		svc := newTestServices(t)
		rec := postJSON(t, newTestHandler(svc), "/api/generate", GenerateRequest{
			Text:   "Hello\n\nWorld",
			Title:  "Greeting",
			Footer: "{page}/{pages}",
		})
		assertPDF(t, rec, 1)
		if got := svc.Usage.Snapshot().Documents; got != 1 {
			t.Errorf("documents counted = %d, want 1", got)
		}
	})

	t.Run("form", func(t *testing.T) {
		form := url.Values{"text": {lines(120)}}
		req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		newTestHandler(newTestServices(t)).ServeHTTP(rec, req)
		assertPDF(t, rec, 3)
	})

	t.Run("errors", func(t *testing.T) {
		const form = "application/x-www-form-urlencoded"
		tests := []struct {
			name        string
			contentType string
			body        string
			status      int
		}{
			{"empty text", "", `{"text":""}`, http.StatusBadRequest},
			{"blank text", "", `{"text":" \n\t "}`, http.StatusBadRequest},
			{"malformed json", "", `{"text":`, http.StatusBadRequest},
			{"over input limit", "", fmt.Sprintf(`{"text":%q}`, strings.Repeat("a", 5000)), http.StatusBadRequest},
			{"over body limit", "", fmt.Sprintf(`{"text":%q}`, strings.Repeat("a", 200_000)), http.StatusRequestEntityTooLarge},
			{"form without text", form, url.Values{"title": {"t"}}.Encode(), http.StatusBadRequest},
			{"form over body limit", form, url.Values{"text": {strings.Repeat("a", 200_000)}}.Encode(), http.StatusRequestEntityTooLarge},
		}
		svc := newTestServices(t)
		h := newTestHandler(svc)
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(tt.body))
				if tt.contentType == "" {
					tt.contentType = "application/json"
				}
				req.Header.Set("Content-Type", tt.contentType)
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, req)
				if rec.Code != tt.status {
					t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
				}
				if errorBody(t, rec) == "" {
					t.Error("empty error message")
				}
			})
		}
		if got := svc.Usage.Snapshot().Documents; got != 0 {
			t.Errorf("rejected requests counted %d documents", got)
		}
	})
}

func TestLayoutEndpoint(t *testing.T) {
	h := newTestHandler(newTestServices(t))

	t.Run("paragraph text", func(t *testing.T) {
		rec := postJSON(t, h, "/api/layout", GenerateRequest{Text: lines(200)})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var resp LayoutResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Pages != 4 || len(resp.Document.Pages) != 4 {
			t.Errorf("pages = %d (%d in document), want 4", resp.Pages, len(resp.Document.Pages))
		}
		if resp.Kind != generate.KindText || resp.Records != 0 {
			t.Errorf("kind = %q, records = %d", resp.Kind, resp.Records)
		}
		if got := resp.Document.Pages[0].Lines[0].Text; got != "line 1" {
			t.Errorf("first line = %q", got)
		}
	})

	t.Run("structured text", func(t *testing.T) {
		text := "Name: Alice\nTitle: Engineer\nDate: 2024-01-01\nDetails: Builds things\n\n" +
			"Name: Bob\nTitle: Ops\nDetails: Keeps them running\n"
		rec := postJSON(t, h, "/api/layout", GenerateRequest{Text: text, Watermark: "draft"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var resp LayoutResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Records != 2 || resp.Pages != 2 {
			t.Errorf("records = %d, pages = %d, want 2 and 2", resp.Records, resp.Pages)
		}
		for _, p := range resp.Document.Pages {
			if len(p.Marks) != 1 || p.Marks[0].Text != "draft" {
				t.Errorf("page %d marks = %+v", p.Index, p.Marks)
			}
		}
	})
}

func TestBatchEndpoint(t *testing.T) {
	t.Run("json records", func(t *testing.T) {
		svc := newTestServices(t)
		body := map[string]any{
			"records": []map[string]any{
				{"name": "Alice", "title": "Engineer", "details": "first"},
				{"name": "Bob", "date": "2024-02-02"},
				{"name": "Carol", "age": 41},
			},
		}
		rec := postJSON(t, newTestHandler(svc), "/api/generate/batch", body)
		assertPDF(t, rec, 3)

		snap := svc.Usage.Snapshot()
		if snap.Units != 3 || snap.ByKind[generate.KindBatch].Documents != 1 {
			t.Errorf("snapshot = %+v", snap)
		}
	})

	t.Run("csv with template", func(t *testing.T) {
		rec := postJSON(t, newTestHandler(newTestServices(t)), "/api/generate/batch", BatchRequest{
			CSV:      "name,city\nAlice,Paris\nBob,Lima\n",
			Template: "Dear {{ name }}, welcome to {{ city }}.",
		})
		assertPDF(t, rec, 2)
	})

	t.Run("template key not in csv", func(t *testing.T) {
		rec := postJSON(t, newTestHandler(newTestServices(t)), "/api/generate/batch", BatchRequest{
			CSV:      "name\nAlice\n",
			Template: "Dear {{ name }} of {{ city }}.",
		})
		assertPDF(t, rec, 1)
		if got := rec.Header().Get(HeaderMissingKeys); got != "city" {
			t.Errorf("%s = %q, want city", HeaderMissingKeys, got)
		}
	})

	many := make([]map[string]string, 83)
	for i := range many {
		many[i] = map[string]string{"name": fmt.Sprintf("r%d", i)}
	}

	tests := []struct {
		name string
		body any
	}{
		{"empty", map[string]any{}},
		{"both sources", map[string]any{"records": []any{map[string]any{"name": "a"}}, "csv": "name\nb\n"}},
		{"not objects", map[string]any{"records": []int{1, 2}}},
		{"nested values", map[string]any{"records": []any{map[string]any{"name": []int{1}}}}},
		{"too many", map[string]any{"records": many}},
	}
	h := newTestHandler(newTestServices(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h, "/api/generate/batch", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestStatsEndpoint(t *testing.T) {
	svc := newTestServices(t)
	h := newTestHandler(svc)

	postJSON(t, h, "/api/generate", GenerateRequest{Text: "one"})
	postJSON(t, h, "/api/generate", GenerateRequest{Text: ""})

	rec := get(h, "/api/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var snap usage.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Documents != 1 || snap.Pages != 1 || len(snap.Recent) != 1 {
		t.Errorf("snapshot = %+v", snap)
	}

	if rec := get(newTestHandler(nil), "/api/stats"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("without store: status = %d, want 503", rec.Code)
	}
}

func TestSwaggerEndpoint(t *testing.T) {
	rec := get(newTestHandler(nil), "/swagger.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var doc struct {
		Info  map[string]any `json:"info"`
		Paths map[string]any `json:"paths"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("swagger.json is not JSON: %v", err)
	}
	for _, p := range []string{"/api/generate", "/api/generate/batch", "/api/layout", "/api/stats", "/health"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("missing path %s", p)
		}
	}
	if doc.Info["title"] != "autopdf API" {
		t.Errorf("title = %v", doc.Info["title"])
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"input", &generate.InputError{Reason: "text is empty"}, http.StatusBadRequest},
		{"empty batch", batch.EmptyBatchError{}, http.StatusBadRequest},
		{"too many", &batch.TooManyRecordsError{Count: 90, Max: 80}, http.StatusBadRequest},
		{"decode", &records.DecodeError{Format: "csv", Err: io.ErrUnexpectedEOF}, http.StatusBadRequest},
		{"wrapped input", fmt.Errorf("request: %w", &generate.InputError{Reason: "x"}), http.StatusBadRequest},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"configuration", &layout.ConfigurationError{Field: "line_height", Reason: "must be positive"}, http.StatusInternalServerError},
		{"other", io.ErrClosedPipe, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRegistryRoutes(t *testing.T) {
	routes := NewRegistry().Routes()
	if len(routes) != len(All()) {
		t.Fatalf("routes = %d, endpoints = %d", len(routes), len(All()))
	}
	seen := make(map[string]bool)
	for _, r := range routes {
		key := r.Method + " " + r.Path
		if seen[key] {
			t.Errorf("duplicate route %s", key)
		}
		seen[key] = true
	}
}
