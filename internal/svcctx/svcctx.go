// Package svcctx carries the server's long-lived services on a request
// context. It sits below both server and endpoints so neither imports the
// other.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/autopdf/autopdf/internal/config"
	"github.com/autopdf/autopdf/internal/generate"
	"github.com/autopdf/autopdf/internal/home"
	"github.com/autopdf/autopdf/internal/render"
	"github.com/autopdf/autopdf/internal/usage"
)

// Services is what a handler may need. Any field can be nil; handlers
// answer 503 when a service they require is missing.
type Services struct {
	Generator     *generate.Service
	Writer        *render.Writer
	Usage         *usage.Store
	ConfigManager *config.Manager
	Logger        *slog.Logger
	Home          *home.Dir
}

type ctxKey struct{}

// WithServices attaches s to ctx.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// ServicesFrom returns the attached Services or nil.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(ctxKey{}).(*Services)
	return s
}

// field reads one service, returning the zero value when ctx carries none.
func field[T any](ctx context.Context, get func(*Services) T) T {
	var zero T
	if s := ServicesFrom(ctx); s != nil {
		return get(s)
	}
	return zero
}

func GeneratorFrom(ctx context.Context) *generate.Service {
	return field(ctx, func(s *Services) *generate.Service { return s.Generator })
}

func WriterFrom(ctx context.Context) *render.Writer {
	return field(ctx, func(s *Services) *render.Writer { return s.Writer })
}

func UsageFrom(ctx context.Context) *usage.Store {
	return field(ctx, func(s *Services) *usage.Store { return s.Usage })
}

func ConfigManagerFrom(ctx context.Context) *config.Manager {
	return field(ctx, func(s *Services) *config.Manager { return s.ConfigManager })
}

func HomeFrom(ctx context.Context) *home.Dir {
	return field(ctx, func(s *Services) *home.Dir { return s.Home })
}

// LoggerFrom never returns nil; it falls back to slog.Default.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l := field(ctx, func(s *Services) *slog.Logger { return s.Logger }); l != nil {
		return l
	}
	return slog.Default()
}
