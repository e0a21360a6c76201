// Package config loads autopdf configuration from file, environment and
// defaults, and reloads it when the file changes.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix of environment variable overrides, for example
// AUTOPDF_LAYOUT_LINE_HEIGHT.
const EnvPrefix = "AUTOPDF"

// Manager owns the effective Config. Readers get an immutable snapshot;
// a reload swaps the snapshot and notifies subscribers.
type Manager struct {
	mu          sync.RWMutex
	v           *viper.Viper
	current     *Config
	subscribers []func(*Config)
	logger      *slog.Logger
}

// NewManager reads defaults, environment and the config file. An empty
// cfgFile searches ./config.yaml and $HOME/.autopdf/config.yaml; a missing
// file leaves the defaults in place.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{v: viper.New(), logger: slog.Default()}
	if err := cm.read(cfgFile); err != nil {
		return nil, err
	}
	cfg, err := cm.decode()
	if err != nil {
		return nil, err
	}
	cm.current = cfg
	return cm, nil
}

// SetLogger replaces the logger used for reload messages. nil is ignored.
func (cm *Manager) SetLogger(logger *slog.Logger) {
	if logger != nil {
		cm.logger = logger
	}
}

func (cm *Manager) read(cfgFile string) error {
	v := cm.v
	for _, e := range DefaultEntries() {
		v.SetDefault(e.Key, e.Value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.autopdf")
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// decode builds a validated Config from the merged viper state.
func (cm *Manager) decode() (*Config, error) {
	cfg := new(Config)
	if err := cm.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Get returns the current snapshot. Callers must not modify it.
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.current
}

// Value returns the effective value of a single key.
func (cm *Manager) Value(key string) (any, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.v.Get(key), nil
}

// ConfigFile returns the file the configuration was read from, if any.
func (cm *Manager) ConfigFile() string {
	return cm.v.ConfigFileUsed()
}

// OnChange subscribes fn to successful reloads. fn runs on the watcher
// goroutine with the new snapshot.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.subscribers = append(cm.subscribers, fn)
}

// WatchConfig reloads the file whenever it changes. A change that fails to
// decode or validate is logged and the previous snapshot stays current.
func (cm *Manager) WatchConfig() {
	cm.v.OnConfigChange(cm.reload)
	cm.v.WatchConfig()
}

func (cm *Manager) reload(e fsnotify.Event) {
	cfg, err := cm.decode()
	if err != nil {
		cm.logger.Warn("ignoring config change", "file", e.Name, "error", err)
		return
	}

	cm.mu.Lock()
	cm.current = cfg
	subs := append(([]func(*Config))(nil), cm.subscribers...)
	cm.mu.Unlock()

	cm.logger.Info("config reloaded", "file", e.Name, "op", e.Op.String())
	for _, fn := range subs {
		fn(cfg)
	}
}

// WriteDefault writes DefaultConfig as commented YAML to path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}

	header := []byte(`# autopdf configuration
# Lengths are in points (1/72 inch). Every key can be overridden with an
# environment variable, e.g. AUTOPDF_LAYOUT_LINE_HEIGHT=16

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
