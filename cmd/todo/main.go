package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-bridge/internal/binding"
	"github.com/BuzzLyutic/todo-bridge/internal/bridge"
	"github.com/BuzzLyutic/todo-bridge/internal/cli"
	"github.com/BuzzLyutic/todo-bridge/internal/config"
)

func main() {
	cfg := config.Load()

	logger := zap.NewNop()
	if cfg.LogLevel == "debug" {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := binding.NewClient(bridge.NewHTTP(cfg.BridgeURL, cfg.BridgeTimeout, logger))

	if err := cli.NewRootCmd(client).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(cli.ExitCode(err))
	}
}
