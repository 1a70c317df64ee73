package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"newsletter-agent/internal/di"
	"newsletter-agent/internal/domain/entity"
	"newsletter-agent/internal/infrastructure/env"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root, release := newRootCmd(func() (*di.Container, error) {
		return di.NewContainer(env.Load(env.NewEnvService()))
	})
	defer release()

	return root.ExecuteContext(ctx)
}

var exitCodes = []struct {
	kind error
	code int
}{
	{entity.ErrConfiguration, 2},
	{entity.ErrElementNotFound, 3},
	{entity.ErrRemoteAPI, 4},
	{entity.ErrNetwork, 5},
	{entity.ErrTimeout, 6},
	{entity.ErrParse, 7},
}

func exitCode(err error) int {
	for _, e := range exitCodes {
		if errors.Is(err, e.kind) {
			return e.code
		}
	}
	return 1
}
