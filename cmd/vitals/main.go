package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/vitals/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		os.Stderr.WriteString("vitals: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
