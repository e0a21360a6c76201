package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/autopdf/autopdf/internal/api"
	"github.com/autopdf/autopdf/internal/config"
	"github.com/autopdf/autopdf/internal/generate"
	"github.com/autopdf/autopdf/internal/home"
	"github.com/autopdf/autopdf/internal/layout"
	"github.com/autopdf/autopdf/internal/records"
	"github.com/autopdf/autopdf/internal/render"
	"github.com/autopdf/autopdf/internal/usage"
)

// docFlags are the flags shared by generate and batch.
type docFlags struct {
	input     string
	out       string
	watermark string
	header    string
	footer    string
	verify    bool
}

func (f *docFlags) register(cmd *cobra.Command, inputHelp string) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "-", inputHelp)
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output PDF path (default: ~/.autopdf/generated/<time>_<id>.pdf)")
	cmd.Flags().StringVar(&f.watermark, "watermark", "", "Watermark on every page (overrides overlay.watermark)")
	cmd.Flags().StringVar(&f.header, "header", "", "Header on every page (overrides overlay.header)")
	cmd.Flags().StringVar(&f.footer, "footer", "", "Footer on every page (overrides overlay.footer)")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "Read the written PDF back and check its page count")
}

func (f *docFlags) overlays() layout.Overlays {
	return layout.Overlays{Watermark: f.watermark, Header: f.header, Footer: f.footer}
}

// session is the local equivalent of the server's services: a generator
// that records usage in the home directory.
type session struct {
	home   *home.Dir
	cfg    *config.Config
	gen    *generate.Service
	usage  *usage.Store
	logger *slog.Logger
}

func openSession() (*session, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	h, err := openHome()
	if err != nil {
		return nil, err
	}
	mgr, err := loadConfig(h, logger)
	if err != nil {
		return nil, err
	}

	store := usage.NewStore(h.StatsPath())
	if err := store.Load(); err != nil {
		logger.Warn("failed to load usage counters", "path", store.Path(), "error", err)
	}

	cfg := mgr.Get()
	return &session{
		home: h,
		cfg:  cfg,
		gen: generate.New(generate.Config{
			Settings: cfg.GeneratorSettings(),
			Observer: store,
			Logger:   logger,
		}),
		usage:  store,
		logger: logger,
	}, nil
}

// write renders res and optionally verifies it. Only a document that made
// it to disk is counted; the usage counters are then saved and the file is
// reported.
func (s *session) write(res *generate.Result, f *docFlags) error {
	path := f.out
	if path == "" {
		path = s.home.GeneratedPath(res.ID, time.Now())
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	writer := render.NewWriter(render.Config{
		FontPath: s.cfg.Render.FontPath,
		Title:    res.Title,
		Logger:   s.logger,
	})
	if err := writer.WriteFile(path, res.Document); err != nil {
		return err
	}

	pages := res.Document.PageCount()
	if f.verify {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read back %s: %w", path, err)
		}
		if err := render.Verify(data, pages); err != nil {
			return err
		}
		s.logger.Debug("pdf verified", "path", path, "pages", pages)
	}

	res.Commit()
	if err := s.usage.Save(); err != nil {
		s.logger.Warn("failed to save usage counters", "path", s.usage.Path(), "error", err)
	}
	return api.OutputFile(path, pages, res.ID)
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

var (
	genFlags docFlags
	genTitle string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render a text file to PDF",
	Long: `Render a text file to PDF without a server.

Text made of Name:, Title:, Date: and Details: blocks becomes one card
per block; any other text is wrapped into paragraphs, separated by the
blank lines of the input.

Examples:
  autopdf generate -i notes.txt -o notes.pdf
  autopdf generate -i people.txt --footer "{page} / {pages}" --verify
  cat notes.txt | autopdf generate --title "Notes"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(genFlags.input)
		if err != nil {
			return err
		}
		s, err := openSession()
		if err != nil {
			return err
		}

		res, err := s.gen.FromText(cmd.Context(), generate.TextRequest{
			Text:     string(data),
			Title:    genTitle,
			Overlays: genFlags.overlays(),
		})
		if err != nil {
			return err
		}
		return s.write(res, &genFlags)
	},
}

var (
	batchFlags    docFlags
	batchTemplate string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Render a JSON or CSV batch to PDF, one card per record",
	Long: `Render one card per record without a server. Each card starts a new page.

Files ending in .csv are read as CSV with a header row; anything else must
be a JSON array of flat objects. A template file with {{ key }}
placeholders replaces the default Name/Title/Date/Details card.

Examples:
  autopdf batch -i people.json -o people.pdf
  autopdf batch -i rows.csv --template letter.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(batchFlags.input)
		if err != nil {
			return err
		}

		var recs []records.Record
		if strings.EqualFold(filepath.Ext(batchFlags.input), ".csv") {
			recs, err = records.DecodeCSV(strings.NewReader(string(data)))
		} else {
			recs, err = records.DecodeJSON(data)
		}
		if err != nil {
			return err
		}

		req := generate.BatchRequest{Records: recs, Overlays: batchFlags.overlays()}
		if batchTemplate != "" {
			tmpl, err := os.ReadFile(batchTemplate)
			if err != nil {
				return fmt.Errorf("failed to read template: %w", err)
			}
			req.Schema = records.TemplateSchema(string(tmpl))
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		res, err := s.gen.FromRecords(cmd.Context(), req)
		if err != nil {
			return err
		}
		return s.write(res, &batchFlags)
	},
}

func init() {
	genFlags.register(generateCmd, "Input text file (- for stdin)")
	generateCmd.Flags().StringVar(&genTitle, "title", "", "Title heading on the first page")

	batchFlags.register(batchCmd, "Records file, .json or .csv (- for JSON on stdin)")
	batchCmd.Flags().StringVar(&batchTemplate, "template", "", "Template file with {{ key }} placeholders")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(batchCmd)
}
