package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ytget/yt-queue/cmd/ytqueue/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.NewCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
