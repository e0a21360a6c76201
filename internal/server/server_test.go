package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/autopdf/autopdf/internal/api"
	"github.com/autopdf/autopdf/internal/config"
	"github.com/autopdf/autopdf/internal/home"
	"github.com/autopdf/autopdf/internal/render"
	"github.com/autopdf/autopdf/internal/server/endpoints"
	"github.com/autopdf/autopdf/internal/testutil"
	"github.com/autopdf/autopdf/internal/usage"
)

func TestNew_Defaults(t *testing.T) {
	srv, err := New(Config{Logger: testutil.Logger(t)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := srv.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8080", got)
	}
	if srv.IsRunning() {
		t.Error("IsRunning() = true before Start")
	}

	found := false
	for _, r := range srv.Routes() {
		if r.Method == "POST" && r.Path == "/api/generate" {
			found = true
		}
	}
	if !found {
		t.Errorf("routes %v missing POST /api/generate", srv.Routes())
	}
}

func TestServer_RequireInit(t *testing.T) {
	srv, err := New(Config{Logger: testutil.Logger(t)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/health before start = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"text":"hi"}`))
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("/api/generate before start = %d, want 503", rec.Code)
	}
}

func startServer(t *testing.T, cfg testutil.ServerConfig, mgr *config.Manager) (*Server, context.CancelFunc, <-chan error) {
	t.Helper()

	dir, err := home.New(cfg.HomeDir)
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}
	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}

	srv, err := New(Config{
		Host:          cfg.Host,
		Port:          cfg.Port,
		Home:          dir,
		ConfigManager: mgr,
		Logger:        cfg.Logger,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Start(ctx)
	}()

	if err := testutil.WaitForServer(cfg.URL(), 10*time.Second); err != nil {
		cancel()
		t.Fatalf("server did not start: %v", err)
	}
	return srv, cancel, done
}

func TestServer_FullLifecycle(t *testing.T) {
	cfg := testutil.NewServerConfig(t)
	srv, cancel, done := startServer(t, cfg, nil)
	client := api.NewClient(cfg.URL())
	ctx := context.Background()

	t.Run("generate", func(t *testing.T) {
		pdf, contentType, err := client.PostRaw(ctx, "/api/generate", endpoints.GenerateRequest{
			Text:  "Hello\n\nfrom the lifecycle test",
			Title: "Lifecycle",
		})
		if err != nil {
			t.Fatalf("PostRaw() error = %v", err)
		}
		if contentType != "application/pdf" {
			t.Errorf("content type = %q", contentType)
		}
		if err := render.Verify(pdf, 1); err != nil {
			t.Errorf("Verify() error = %v", err)
		}
	})

	t.Run("batch", func(t *testing.T) {
		pdf, _, err := client.PostRaw(ctx, "/api/generate/batch", endpoints.BatchRequest{
			CSV: "name,title\nAlice,Engineer\nBob,Ops\n",
		})
		if err != nil {
			t.Fatalf("PostRaw() error = %v", err)
		}
		pages, err := render.PageCount(bytes.NewReader(pdf))
		if err != nil || pages != 2 {
			t.Errorf("PageCount() = %d, %v; want 2", pages, err)
		}
	})

	t.Run("bad request", func(t *testing.T) {
		_, _, err := client.PostRaw(ctx, "/api/generate", endpoints.GenerateRequest{Text: "   "})
		if err == nil || !strings.Contains(err.Error(), "text is empty") {
			t.Errorf("PostRaw() error = %v, want text is empty", err)
		}
	})

	t.Run("status", func(t *testing.T) {
		var status endpoints.StatusResponse
		if err := client.Get(ctx, "/status", &status); err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if status.Server != "running" {
			t.Errorf("status.Server = %q, want running", status.Server)
		}
		if status.Usage == nil || status.Usage.Documents != 2 {
			t.Errorf("status.Usage = %+v, want 2 documents", status.Usage)
		}
	})

	t.Run("is_running", func(t *testing.T) {
		if !srv.IsRunning() {
			t.Error("IsRunning() = false, want true")
		}
	})

	cancel()
	if err := testutil.WaitForShutdown(done, 10*time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	t.Run("not_running_after_shutdown", func(t *testing.T) {
		if srv.IsRunning() {
			t.Error("IsRunning() = true after shutdown, want false")
		}
	})

	t.Run("usage_saved", func(t *testing.T) {
		store := usage.NewStore(srv.Usage().Path())
		if err := store.Load(); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		snap := store.Snapshot()
		if snap.Documents != 2 || snap.Units != 3 {
			t.Errorf("saved snapshot = %+v, want 2 documents and 3 units", snap)
		}
	})
}

func TestServer_DoubleStart(t *testing.T) {
	cfg := testutil.NewServerConfig(t)
	srv, cancel, done := startServer(t, cfg, nil)
	defer func() {
		cancel()
		testutil.WaitForShutdown(done, 10*time.Second)
	}()

	if err := srv.Start(context.Background()); err == nil {
		t.Error("second Start() succeeded, want error")
	}
}

func TestServer_ContextCancellation(t *testing.T) {
	cfg := testutil.NewServerConfig(t)
	_, cancel, done := startServer(t, cfg, nil)

	cancel()
	if err := testutil.WaitForShutdown(done, 10*time.Second); err != nil {
		t.Fatalf("server did not stop: %v", err)
	}

	client := &http.Client{Timeout: time.Second}
	if resp, err := client.Get(cfg.URL() + "/health"); err == nil {
		resp.Body.Close()
		t.Error("server still answering after shutdown")
	}
}

func TestServer_ConfigReload(t *testing.T) {
	cfg := testutil.NewServerConfig(t)
	if err := os.WriteFile(cfg.ConfigFile, []byte("layout:\n  max_chars_per_line: 40\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	mgr, err := config.NewManager(cfg.ConfigFile)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	mgr.SetLogger(cfg.Logger)

	srv, cancel, done := startServer(t, cfg, mgr)
	defer func() {
		cancel()
		testutil.WaitForShutdown(done, 10*time.Second)
	}()

	if got := srv.Generator().Settings().Geometry.MaxCharsPerLine; got != 40 {
		t.Fatalf("initial max_chars_per_line = %d, want 40", got)
	}

	mgr.WatchConfig()
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(cfg.ConfigFile, []byte("layout:\n  max_chars_per_line: 60\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if srv.Generator().Settings().Geometry.MaxCharsPerLine == 60 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if got := srv.Generator().Settings().Geometry.MaxCharsPerLine; got != 60 {
		t.Fatalf("max_chars_per_line after reload = %d, want 60", got)
	}

	var status endpoints.StatusResponse
	if err := api.NewClient(cfg.URL()).Get(context.Background(), "/status", &status); err != nil {
		t.Fatalf("Get(/status) error = %v", err)
	}
	if status.Layout.Geometry.MaxCharsPerLine != 60 {
		t.Errorf("status geometry = %+v", status.Layout.Geometry)
	}
}
