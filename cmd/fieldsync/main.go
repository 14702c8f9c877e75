// Package main provides the entry point for the fieldsync CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/guangfu250923/fieldsync/cmd/fieldsync/app"
	"github.com/guangfu250923/fieldsync/cmd/fieldsync/cmd"
)

// Version information populated by the release build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	application, err := app.New(version, commit, date)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := cmd.NewRootCommand(application)
	if err := root.ExecuteContext(ctx); err != nil {
		app.ExitOnError(err)
	}
}
