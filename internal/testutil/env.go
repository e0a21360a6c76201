// Package testutil holds helpers for tests that run a real server.
package testutil

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/autopdf/autopdf/internal/api"
)

// LogEnv enables test server logs on stderr when set to any value.
const LogEnv = "AUTOPDF_TEST_LOG"

// ServerConfig is an isolated place to run one test server: a loopback
// port, a private home directory and a config file path that does not
// exist yet.
type ServerConfig struct {
	Host       string
	Port       string
	HomeDir    string
	ConfigFile string
	Logger     *slog.Logger
}

// NewServerConfig reserves a free port and a temporary home for t.
func NewServerConfig(t *testing.T) ServerConfig {
	t.Helper()

	port, err := FindFreePort()
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}

	dir := t.TempDir()
	return ServerConfig{
		Host:       "127.0.0.1",
		Port:       port,
		HomeDir:    filepath.Join(dir, "home"),
		ConfigFile: filepath.Join(dir, "config.yaml"),
		Logger:     Logger(t),
	}
}

// URL is the base URL the server will listen on.
func (c ServerConfig) URL() string {
	return "http://" + net.JoinHostPort(c.Host, c.Port)
}

// Logger discards everything unless LogEnv is set.
func Logger(t *testing.T) *slog.Logger {
	t.Helper()
	var w io.Writer = io.Discard
	if os.Getenv(LogEnv) != "" {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// WaitForServer blocks until the server at url reports ready.
func WaitForServer(url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return api.NewClient(url).WaitReady(ctx, timeout)
}

// WaitForShutdown returns what Start sent on done, or an error after
// timeout.
func WaitForShutdown(done <-chan error, timeout time.Duration) error {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case err := <-done:
		return err
	case <-t.C:
		return errors.New("server did not stop within " + timeout.String())
	}
}

// FindFreePort asks the kernel for an unused loopback port.
func FindFreePort() (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer l.Close()
	return strconv.Itoa(l.Addr().(*net.TCPAddr).Port), nil
}
