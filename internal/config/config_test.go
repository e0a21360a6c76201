package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/autopdf/autopdf/internal/layout"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if cfg.Limits.MaxRecordsPerBatch != 80 {
		t.Errorf("MaxRecordsPerBatch = %d, want 80", cfg.Limits.MaxRecordsPerBatch)
	}
	if cfg.Geometry() != layout.A4() {
		t.Errorf("default geometry = %+v, want A4", cfg.Geometry())
	}
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		configContent := `
layout:
  line_height: 20
overlay:
  watermark: "draft"
`
		if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if cfg.Layout.LineHeight != 20 {
			t.Errorf("expected line height 20, got %v", cfg.Layout.LineHeight)
		}
		if cfg.Overlay.Watermark != "draft" {
			t.Errorf("expected watermark draft, got %q", cfg.Overlay.Watermark)
		}
		// Keys absent from the file keep their defaults.
		if cfg.Layout.PageWidth != DefaultConfig().Layout.PageWidth {
			t.Errorf("expected default page width, got %v", cfg.Layout.PageWidth)
		}
		if mgr.ConfigFile() != configFile {
			t.Errorf("ConfigFile() = %q", mgr.ConfigFile())
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("AUTOPDF_LIMITS_MAX_RECORDS_PER_BATCH", "12")
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(configFile, []byte("server:\n  port: \"9000\"\n"), 0644); err != nil {
			t.Fatal(err)
		}

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		if got := mgr.Get().Limits.MaxRecordsPerBatch; got != 12 {
			t.Errorf("expected 12 from environment, got %d", got)
		}
		if got := mgr.Get().Server.Port; got != "9000" {
			t.Errorf("expected port 9000, got %q", got)
		}
	})

	t.Run("rejects degenerate geometry", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(configFile, []byte("layout:\n  line_height: 0\n"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := NewManager(configFile)
		if !errors.Is(err, layout.ErrConfiguration) {
			t.Errorf("expected configuration error, got %v", err)
		}
	})
}

func TestManager_Value(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "layout:\n  max_chars_per_line: 42\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	v, err := mgr.Value("layout.max_chars_per_line")
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != 42 {
		t.Errorf("expected 42, got %v (%T)", v, v)
	}

	if _, err := mgr.Value("layout.nope"); !errors.Is(err, ErrNoDefault) {
		t.Errorf("expected ErrNoDefault, got %v", err)
	}
	if _, err := mgr.Value("bad key"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestManager_OnChange_Multiple(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "overlay:\n  header: x\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})

	mgr.mu.RLock()
	if len(mgr.subscribers) != 3 {
		t.Errorf("expected 3 subscribers, got %d", len(mgr.subscribers))
	}
	mgr.mu.RUnlock()
}

func TestManager_Get_ThreadSafe(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "overlay:\n  header: x\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				_ = mgr.Get().Overlay.Header
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestManager_WatchConfig(t *testing.T) {
	configFile := writeConfig(t, "overlay:\n  watermark: \"initial\"\n")

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	if got := mgr.Get().Overlay.Watermark; got != "initial" {
		t.Errorf("initial value mismatch: got %q", got)
	}

	var callbackCount atomic.Int32
	var lastValue atomic.Value
	mgr.OnChange(func(cfg *Config) {
		callbackCount.Add(1)
		lastValue.Store(cfg.Overlay.Watermark)
	})

	mgr.WatchConfig()

	// Give fsnotify time to set up the watcher
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(configFile, []byte("overlay:\n  watermark: \"updated\"\n"), 0644); err != nil {
		t.Fatalf("failed to write updated config file: %v", err)
	}

	// Wait for the watcher to detect the change (fsnotify is async)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if callbackCount.Load() > 0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if callbackCount.Load() == 0 {
		t.Fatal("callback was not invoked after config file change")
	}
	if got := mgr.Get().Overlay.Watermark; got != "updated" {
		t.Errorf("config not updated: got %q", got)
	}
	if v := lastValue.Load(); v != "updated" {
		t.Errorf("callback received wrong value: got %v", v)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("written defaults do not load: %v", err)
	}
	if *mgr.Get() != *DefaultConfig() {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", mgr.Get(), DefaultConfig())
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key  string
		want error
	}{
		{"layout.line_height", nil},
		{"server.port", nil},
		{"", ErrInvalidKey},
		{"layout line_height", ErrInvalidKey},
		{".layout", ErrInvalidKey},
		{"layout.", ErrInvalidKey},
		{"layout.unknown", ErrNoDefault},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.want == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDefaultEntries(t *testing.T) {
	seen := make(map[string]bool)
	for _, e := range DefaultEntries() {
		if seen[e.Key] {
			t.Errorf("duplicate key %s", e.Key)
		}
		seen[e.Key] = true
		if e.Description == "" {
			t.Errorf("key %s has no description", e.Key)
		}
	}
	if GetDefault("layout.line_height").Value != 14.0 {
		t.Error("unexpected default line height")
	}
	if GetDefault("does.not.exist") != nil {
		t.Error("GetDefault should return nil for unknown keys")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}
