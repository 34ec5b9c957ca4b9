// Command cardctl runs card engine operations from a terminal against the
// configured profile store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	applog "github.com/janisto/cardfolio/internal/platform/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// stdout carries command output.
	_ = applog.Configure(applog.Options{Level: "warn", Stderr: true})
	defer func() { _ = applog.Sync() }()

	if err := newRootCmd(openBackend).ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
