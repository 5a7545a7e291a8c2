package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/architeacher/fieldcompare/internal/cli"
	"github.com/architeacher/fieldcompare/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cfg, err := config.Init()
	if err != nil {
		stop()
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(cli.ExitCommandError)
	}

	code := cli.Execute(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
