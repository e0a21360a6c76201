// Package usage counts the documents produced by the service.
package usage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/autopdf/autopdf/internal/generate"
)

// recentLimit is the number of events kept for the status view.
const recentLimit = 20

// KindTotals aggregates the events of one kind.
type KindTotals struct {
	Documents int `json:"documents" yaml:"documents"`
	Units     int `json:"units" yaml:"units"`
	Pages     int `json:"pages" yaml:"pages"`
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Documents int                          `json:"documents" yaml:"documents"`
	Units     int                          `json:"units" yaml:"units"`
	Pages     int                          `json:"pages" yaml:"pages"`
	ByKind    map[generate.Kind]KindTotals `json:"by_kind" yaml:"by_kind"`
	LastAt    time.Time                    `json:"last_at,omitempty" yaml:"last_at,omitempty"`
	Recent    []generate.Event             `json:"recent,omitempty" yaml:"recent,omitempty"`
}

// Store holds the process-wide counters. It implements generate.Observer.
type Store struct {
	mu   sync.Mutex
	path string
	snap Snapshot
}

var _ generate.Observer = (*Store)(nil)

// NewStore creates an empty store persisted at path. An empty path keeps
// the counters in memory only.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		snap: Snapshot{ByKind: make(map[generate.Kind]KindTotals)},
	}
}

// DocumentProduced adds one event to the counters.
func (s *Store) DocumentProduced(e generate.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Documents++
	s.snap.Units += e.Units
	s.snap.Pages += e.Pages

	k := s.snap.ByKind[e.Kind]
	k.Documents++
	k.Units += e.Units
	k.Pages += e.Pages
	s.snap.ByKind[e.Kind] = k

	if e.CreatedAt.After(s.snap.LastAt) {
		s.snap.LastAt = e.CreatedAt
	}
	s.snap.Recent = append(s.snap.Recent, e)
	if len(s.snap.Recent) > recentLimit {
		s.snap.Recent = s.snap.Recent[len(s.snap.Recent)-recentLimit:]
	}
}

// Snapshot returns a copy of the counters.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.clone()
}

// Reset clears the counters.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Snapshot{ByKind: make(map[generate.Kind]KindTotals)}
}

// Load replaces the counters with the persisted ones. A missing file is not
// an error.
func (s *Store) Load() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read usage file: %w", err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to parse usage file: %w", err)
	}
	if snap.ByKind == nil {
		snap.ByKind = make(map[generate.Kind]KindTotals)
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

// Save writes the counters to the store's path.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	data, err := yaml.Marshal(s.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode usage: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create usage directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write usage file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace usage file: %w", err)
	}
	return nil
}

// Path returns where the store is persisted.
func (s *Store) Path() string {
	return s.path
}

func (sn Snapshot) clone() Snapshot {
	out := sn
	out.ByKind = make(map[generate.Kind]KindTotals, len(sn.ByKind))
	for k, v := range sn.ByKind {
		out.ByKind[k] = v
	}
	out.Recent = append([]generate.Event(nil), sn.Recent...)
	return out
}
