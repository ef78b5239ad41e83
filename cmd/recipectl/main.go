// Package main is the recipectl administrative executable.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/recipebook/recipebook/internal/command"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() { os.Exit(run()) }

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := command.RootCommand(version).ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
