// Package batch lays out many records as one paginated document, one card
// per record.
package batch

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/autopdf/autopdf/internal/layout"
	"github.com/autopdf/autopdf/internal/records"
)

// DefaultMaxRecords is the record cap used when none is configured.
const DefaultMaxRecords = 80

// CardBlocks converts record r, the ordinal-th of its batch (1-based), into
// layout blocks: a card frame, a "Card N" heading, then either the schema
// fields and details paragraph or the filled template.
func CardBlocks(ordinal int, r records.Record, s records.Schema) []layout.Block {
	blocks := []layout.Block{
		layout.CardFrame{Ordinal: ordinal},
		layout.Heading{Text: fmt.Sprintf("Card %d", ordinal)},
	}

	if s.HasTemplate() {
		return append(blocks, layout.TextBlocks(records.Fill(s.Template, r))...)
	}

	for _, f := range s.Fields {
		if v, ok := s.Value(r, f); ok {
			blocks = append(blocks, layout.LabeledField{Label: f.Label, Value: v})
		}
	}
	if s.DetailsKey != "" {
		blocks = append(blocks, layout.Paragraph{Text: r.Get(s.DetailsKey)})
	}
	return blocks
}

// Compose lays out each record on its own run of pages and concatenates
// them in input order. Records are laid out concurrently; the result does
// not depend on scheduling.
//
// It fails with EmptyBatchError for an empty batch, *TooManyRecordsError
// when len(recs) exceeds maxRecords (a maxRecords of zero or less disables
// the cap) and *layout.ConfigurationError for a degenerate geometry.
func Compose(recs []records.Record, s records.Schema, g layout.Geometry, maxRecords int) (*layout.Document, error) {
	if len(recs) == 0 {
		return nil, EmptyBatchError{}
	}
	if maxRecords > 0 && len(recs) > maxRecords {
		return nil, &TooManyRecordsError{Count: len(recs), Max: maxRecords}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	docs := make([]*layout.Document, len(recs))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, r := range recs {
		eg.Go(func() error {
			doc, err := layout.Layout(CardBlocks(i+1, r, s), g)
			if err != nil {
				return fmt.Errorf("card %d: %w", i+1, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := &layout.Document{Geometry: g}
	for _, d := range docs {
		out.Append(d)
	}
	return out, nil
}
