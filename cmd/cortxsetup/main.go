package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/cli"
)

// version is injected at build time:
//
//	go build -ldflags "-X main.version=2.0.0"
var version = "dev"

func main() {
	cli.SetVersion(version)

	root, err := cli.New()
	if err != nil {
		slog.Error("failed to initialize", "error", err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Run(ctx, os.Args); err != nil {
		slog.Error("command failed", "error", err.Error())
		os.Exit(1)
	}
}
