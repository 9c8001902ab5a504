package main

import (
	"context"
	"os"

	"github.com/desertthunder/ytpl/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnv(shared.EnvFiles...); err != nil {
		logger.Warn("failed to load environment files", "error", err)
	}

	runner := NewRunner(RunnerOpts{Logger: logger})

	err := runner.app().Run(context.Background(), os.Args)
	os.Exit(reportError(os.Stderr, err))
}
