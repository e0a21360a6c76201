package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/autopdf/autopdf/internal/api"
	"github.com/autopdf/autopdf/internal/batch"
	"github.com/autopdf/autopdf/internal/generate"
	"github.com/autopdf/autopdf/internal/records"
)

// Process exit codes. exitInput marks a rejected document.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInput       = 2
	exitInterrupted = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return exitCode(rootCmd.ExecuteContext(ctx))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.Is(err, generate.ErrInput),
		errors.Is(err, records.ErrDecode),
		errors.Is(err, batch.ErrEmptyBatch),
		errors.Is(err, batch.ErrTooManyRecords),
		api.IsRejected(err):
		return exitInput
	default:
		return exitFailure
	}
}
