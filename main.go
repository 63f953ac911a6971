package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/telegram-files/gate/pkg/commands/root"
	"github.com/telegram-files/gate/pkg/log"
)

func main() {
	status := 1
	defer func() {
		os.Exit(status)
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx, cleanup, err := log.Logging(ctx)
	defer cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	status = 0
}
