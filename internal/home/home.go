// Package home resolves the autopdf home directory and the files kept in
// it.
package home

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultDirName is the default name for the autopdf home directory.
	DefaultDirName = ".autopdf"

	// GeneratedDirName is the subdirectory for PDFs written by the CLI.
	GeneratedDirName = "generated"

	// ConfigFileName is read by serve and written by "config init".
	ConfigFileName = "config.yaml"

	// StatsFileName holds the persisted usage counters.
	StatsFileName = "stats.yaml"
)

// Dir is a resolved home directory. It does not need to exist yet.
type Dir struct {
	path string
}

// New resolves path, defaulting to ~/.autopdf when it is empty. Nothing
// is created on disk.
func New(path string) (*Dir, error) {
	if path != "" {
		return &Dir{path: path}, nil
	}
	user, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("locate user home: %w", err)
	}
	return &Dir{path: filepath.Join(user, DefaultDirName)}, nil
}

// Path is the root of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// GeneratedDir returns the directory generated PDFs are written to by
// default.
func (d *Dir) GeneratedDir() string {
	return filepath.Join(d.path, GeneratedDirName)
}

// GeneratedPath returns a default output path for a document. The name
// sorts by creation time and ends with the first block of id.
func (d *Dir) GeneratedPath(id string, at time.Time) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return filepath.Join(d.GeneratedDir(), fmt.Sprintf("%s_%s.pdf", at.UTC().Format("20060102T150405"), short))
}

// ConfigPath is where "config init" writes and serve looks by default.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// StatsPath returns the path of the usage counter file.
func (d *Dir) StatsPath() string {
	return filepath.Join(d.path, StatsFileName)
}

// EnsureExists creates the home and its generated/ subdirectory.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.GeneratedDir(), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", d.GeneratedDir(), err)
	}
	return nil
}

// Exists reports whether the home directory is present.
func (d *Dir) Exists() bool { return exists(d.path) }

// ConfigExists reports whether config.yaml is present.
func (d *Dir) ConfigExists() bool { return exists(d.ConfigPath()) }

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
