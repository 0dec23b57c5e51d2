package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"facilities/internal/cli"
	"facilities/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// stdout carries reports
	lo := logger.FromEnv()
	if os.Getenv("LOG_OUTPUT") == "" {
		lo.Output = "stderr"
	}
	logger.Init(lo)

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
