package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"zshsetup/internal/confirm"
	"zshsetup/internal/failure"
	"zshsetup/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &cli{
		stdout: os.Stdout,
		stderr: os.Stderr,
		confirmer: func(yes bool) confirm.Confirmer {
			return confirm.Choose(yes, os.Stdin, os.Stdout)
		},
	}

	err := run(ctx, os.Args[1:], c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	stop()
	os.Exit(failure.ExitCode(err))
}

func run(ctx context.Context, args []string, c *cli) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger := logging.GetLogger("main")
			logger.Error().Str("stack", string(debug.Stack())).Msgf("panic: %v", r)
			err = fmt.Errorf("zshsetup panicked: %v", r)
		}
	}()

	root := newRootCmd(c)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

type cli struct {
	stdout    io.Writer
	stderr    io.Writer
	confirmer func(yes bool) confirm.Confirmer

	verbosity  int
	configPath string
	logFile    string
}
