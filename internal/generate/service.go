// Package generate is the entry point shared by the HTTP server and the
// CLI: it takes raw text or records, runs them through sanitization,
// extraction and layout, and reports every produced document.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/autopdf/autopdf/internal/batch"
	"github.com/autopdf/autopdf/internal/layout"
	"github.com/autopdf/autopdf/internal/records"
	"github.com/autopdf/autopdf/internal/text"
)

// DefaultMaxInputBytes bounds the size of a text request.
const DefaultMaxInputBytes = 1 << 20

// Kind tells text documents from batch documents.
type Kind string

const (
	KindText  Kind = "text"
	KindBatch Kind = "batch"
)

// Event describes one successfully produced document.
type Event struct {
	ID        string    `json:"id" yaml:"id"`
	Kind      Kind      `json:"kind" yaml:"kind"`
	Units     int       `json:"units" yaml:"units"`
	Pages     int       `json:"pages" yaml:"pages"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Observer is told about every delivered document, once per Result whose
// Commit is called.
type Observer interface {
	DocumentProduced(Event)
}

// Limits bound the work a single request may ask for.
type Limits struct {
	MaxRecords    int
	MaxInputBytes int
}

// Settings are the values that may change while the service runs.
type Settings struct {
	Geometry layout.Geometry
	Overlays layout.Overlays
	Limits   Limits
}

// Config configures a Service.
type Config struct {
	Settings
	Observer Observer
	Logger   *slog.Logger
}

// Service produces laid-out documents.
type Service struct {
	mu       sync.RWMutex
	settings Settings

	observer Observer
	logger   *slog.Logger
}

// New creates a Service. Zero limits fall back to the package defaults.
func New(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		settings: withDefaults(cfg.Settings),
		observer: cfg.Observer,
		logger:   logger,
	}
}

func withDefaults(s Settings) Settings {
	if s.Limits.MaxRecords <= 0 {
		s.Limits.MaxRecords = batch.DefaultMaxRecords
	}
	if s.Limits.MaxInputBytes <= 0 {
		s.Limits.MaxInputBytes = DefaultMaxInputBytes
	}
	return s
}

// Settings returns the current settings.
func (s *Service) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update replaces the settings used by subsequent requests.
func (s *Service) Update(settings Settings) {
	settings = withDefaults(settings)
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	s.logger.Info("generator settings updated",
		"lines_per_page", layout.LinesPerPage(settings.Geometry),
		"max_records", settings.Limits.MaxRecords,
	)
}

// TextRequest asks for a document built from free text.
type TextRequest struct {
	Text     string
	Title    string
	Overlays layout.Overlays
}

// BatchRequest asks for one card per record.
type BatchRequest struct {
	Records  []records.Record
	Schema   records.Schema
	Overlays layout.Overlays
}

// Result is a laid-out document. It is not counted as produced until the
// caller has delivered it and calls Commit.
type Result struct {
	ID       string
	Kind     Kind
	Title    string
	Records  int
	Document *layout.Document

	// MissingKeys are template placeholders no record filled in.
	MissingKeys []string

	event  Event
	notify func(Event)
	once   sync.Once
}

// Commit reports the document to the service's observer. Only the first
// call has an effect.
func (r *Result) Commit() {
	r.once.Do(func() {
		if r.notify != nil {
			r.notify(r.event)
		}
	})
}

// Event is what Commit reports.
func (r *Result) Event() Event { return r.event }

// FromText builds a document from free text. Text holding Name:/Title:/
// Date:/Details: blocks becomes one card per block; any other text is laid
// out as paragraphs under an optional title heading.
//
// Empty, blank or oversized text fails with *InputError.
func (s *Service) FromText(ctx context.Context, req TextRequest) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := s.Settings()

	if len(req.Text) > cfg.Limits.MaxInputBytes {
		return nil, &InputError{Reason: fmt.Sprintf("text is %d bytes, limit is %d", len(req.Text), cfg.Limits.MaxInputBytes)}
	}
	clean := text.Sanitize(req.Text)
	if text.IsBlank(clean) {
		return nil, &InputError{Reason: "text is empty"}
	}
	title := text.Sanitize(req.Title)

	var (
		doc   *layout.Document
		count int
		err   error
	)
	if recs, ok := records.Extract(clean); ok {
		count = len(recs)
		doc, err = batch.Compose(recs, records.DefaultSchema(), cfg.Geometry, cfg.Limits.MaxRecords)
	} else {
		var blocks []layout.Block
		if !text.IsBlank(title) {
			blocks = append(blocks, layout.Heading{Text: title})
		}
		blocks = append(blocks, layout.TextBlocks(clean)...)
		doc, err = layout.Layout(blocks, cfg.Geometry)
	}
	if err != nil {
		return nil, err
	}

	res := s.finish(doc, KindText, 1, mergeOverlays(cfg.Overlays, req.Overlays))
	res.Title = title
	res.Records = count
	return res, nil
}

// FromRecords builds one card per record, each starting on a new page.
// It fails with batch.EmptyBatchError or *batch.TooManyRecordsError when
// the record count is out of bounds.
func (s *Service) FromRecords(ctx context.Context, req BatchRequest) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := s.Settings()

	recs := make([]records.Record, len(req.Records))
	for i, r := range req.Records {
		recs[i] = sanitizeRecord(r)
	}
	schema := req.Schema
	if schema.HasTemplate() {
		schema.Template = text.Sanitize(schema.Template)
	} else if len(schema.Fields) == 0 && schema.DetailsKey == "" {
		schema = records.DefaultSchema()
	}

	doc, err := batch.Compose(recs, schema, cfg.Geometry, cfg.Limits.MaxRecords)
	if err != nil {
		return nil, err
	}

	res := s.finish(doc, KindBatch, len(recs), mergeOverlays(cfg.Overlays, req.Overlays))
	res.Records = len(recs)
	if schema.HasTemplate() {
		res.MissingKeys = records.MissingKeys(schema.Template, recs)
		if len(res.MissingKeys) > 0 {
			s.logger.Warn("template keys missing from every record", "id", res.ID, "keys", res.MissingKeys)
		}
	}
	return res, nil
}

func (s *Service) finish(doc *layout.Document, kind Kind, units int, o layout.Overlays) *Result {
	if !o.Empty() {
		doc = layout.Apply(doc, o)
	}
	ev := Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Units:     units,
		Pages:     doc.PageCount(),
		CreatedAt: time.Now(),
	}
	s.logger.Debug("document laid out", "id", ev.ID, "kind", kind, "units", units, "pages", ev.Pages)
	return &Result{ID: ev.ID, Kind: kind, Document: doc, event: ev, notify: s.produced}
}

func (s *Service) produced(ev Event) {
	if s.observer != nil {
		s.observer.DocumentProduced(ev)
	}
	s.logger.Info("document produced", "id", ev.ID, "kind", ev.Kind, "units", ev.Units, "pages", ev.Pages)
}

func sanitizeRecord(r records.Record) records.Record {
	out := make(records.Record, len(r))
	for k, v := range r {
		out[k] = text.Sanitize(v)
	}
	return out
}

// mergeOverlays takes each mark from req when set, else from defaults.
func mergeOverlays(defaults, req layout.Overlays) layout.Overlays {
	if req.Watermark != "" {
		defaults.Watermark = req.Watermark
	}
	if req.Header != "" {
		defaults.Header = req.Header
	}
	if req.Footer != "" {
		defaults.Footer = req.Footer
	}
	return defaults
}
