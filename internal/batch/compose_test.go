package batch

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/autopdf/autopdf/internal/layout"
	"github.com/autopdf/autopdf/internal/records"
)

func testGeometry() layout.Geometry {
	return layout.Geometry{
		PageWidth:       600,
		PageHeight:      800,
		TopMargin:       50,
		BottomMargin:    50,
		LeftMargin:      40,
		RightMargin:     40,
		LineHeight:      14,
		MaxCharsPerLine: 80,
	}
}

func makeRecords(n int) []records.Record {
	recs := make([]records.Record, n)
	for i := range recs {
		recs[i] = records.Record{
			records.KeyName:    fmt.Sprintf("person %d", i+1),
			records.KeyTitle:   "title",
			records.KeyDate:    "2024-01-01",
			records.KeyDetails: "details",
		}
	}
	return recs
}

func TestCompose_Cap(t *testing.T) {
	tests := []struct {
		count   int
		wantErr bool
	}{
		{81, false},
		{82, false},
		{83, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d records", tt.count), func(t *testing.T) {
			doc, err := Compose(makeRecords(tt.count), records.DefaultSchema(), testGeometry(), 82)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Compose: %v", err)
				}
				if doc.PageCount() != tt.count {
					t.Errorf("got %d pages, want %d", doc.PageCount(), tt.count)
				}
				return
			}

			if doc != nil {
				t.Error("expected no document")
			}
			var tm *TooManyRecordsError
			if !errors.As(err, &tm) {
				t.Fatalf("error %v is not a TooManyRecordsError", err)
			}
			if tm.Count != 83 || tm.Max != 82 {
				t.Errorf("error = %+v", tm)
			}
			if !errors.Is(err, ErrTooManyRecords) {
				t.Error("errors.Is(err, ErrTooManyRecords) = false")
			}
		})
	}
}

func TestCompose_Empty(t *testing.T) {
	for _, recs := range [][]records.Record{nil, {}} {
		_, err := Compose(recs, records.DefaultSchema(), testGeometry(), 80)
		if !errors.Is(err, ErrEmptyBatch) {
			t.Errorf("error = %v, want ErrEmptyBatch", err)
		}
		var eb EmptyBatchError
		if !errors.As(err, &eb) {
			t.Errorf("error %v is not an EmptyBatchError", err)
		}
	}
}

func TestCompose_NoCap(t *testing.T) {
	if _, err := Compose(makeRecords(200), records.DefaultSchema(), testGeometry(), 0); err != nil {
		t.Fatalf("Compose: %v", err)
	}
}

func TestCompose_ConfigurationError(t *testing.T) {
	g := testGeometry()
	g.LineHeight = 0
	_, err := Compose(makeRecords(2), records.DefaultSchema(), g, 80)
	if !errors.Is(err, layout.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

func TestCompose_EachRecordStartsPage(t *testing.T) {
	recs := makeRecords(3)
	// The second card spills onto a second page.
	recs[1] = recs[1].Clone()
	recs[1][records.KeyDetails] = strings.Repeat("long line\n", 60)

	doc, err := Compose(recs, records.DefaultSchema(), testGeometry(), 80)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if doc.PageCount() != 4 {
		t.Fatalf("got %d pages, want 4", doc.PageCount())
	}

	starts := []int{0, 1, 3}
	for n, idx := range starts {
		p := doc.Pages[idx]
		if p.Index != idx {
			t.Errorf("page %d has index %d", idx, p.Index)
		}
		if p.Lines[0].Style.Class != layout.ClassRule {
			t.Errorf("page %d does not open with a card frame", idx)
		}
		if want := fmt.Sprintf("Card %d", n+1); p.Lines[2].Text != want {
			t.Errorf("page %d heading = %q, want %q", idx, p.Lines[2].Text, want)
		}
	}
	if doc.Pages[2].Lines[0].Style.Class == layout.ClassRule {
		t.Error("continuation page should not open a new card")
	}
}

func TestCardBlocks(t *testing.T) {
	r := records.Record{records.KeyName: "Alice", records.KeySubject: "Eng", "extra": "ignored"}
	got := CardBlocks(2, r, records.DefaultSchema())
	want := []layout.Block{
		layout.CardFrame{Ordinal: 2},
		layout.Heading{Text: "Card 2"},
		layout.LabeledField{Label: "Name", Value: "Alice"},
		layout.LabeledField{Label: "Title", Value: "Eng"},
		layout.Paragraph{Text: ""},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d blocks, want %d: %#v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("block %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestCardBlocks_Template(t *testing.T) {
	r := records.Record{"nome": "Ana", "cargo": "Dev"}
	got := CardBlocks(1, r, records.TemplateSchema("Nome: {{ nome }}\n\nCargo: {{ cargo }}"))
	want := []layout.Block{
		layout.CardFrame{Ordinal: 1},
		layout.Heading{Text: "Card 1"},
		layout.Paragraph{Text: "Nome: Ana"},
		layout.Spacer{},
		layout.Paragraph{Text: "Cargo: Dev"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d blocks, want %d: %#v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("block %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}
