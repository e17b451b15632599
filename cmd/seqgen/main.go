package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/seqgen/internal/cli"
)

func main() {
	// stdout is reserved for the generated output
	logger.Configure(func(l *logging.Logger) { l.Out = os.Stderr })

	e, err := cli.LoadEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.New(e).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
