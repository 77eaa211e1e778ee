package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/quentinproust/teamwork-cli/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersionInfo(version, commit, date)
	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
