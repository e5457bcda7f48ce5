package main

import (
	"context"
	"fmt"
	"os"

	"github.com/krushit1307/HRMS/internal/app"
	"github.com/krushit1307/HRMS/internal/bootstrap"
	"github.com/krushit1307/HRMS/internal/cli"
	"github.com/krushit1307/HRMS/internal/config"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dayflowctl: config: %v\n", err)
		os.Exit(2)
	}

	logger, err := bootstrap.NewLogger(bootstrap.LoggerConfig{Level: "warn"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "dayflowctl: logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	open := func(ctx context.Context) (*app.Resources, error) {
		return app.OpenResources(ctx, cfg, logger)
	}
	if err := cli.NewRootCommand(os.Stdout, open).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dayflowctl: %v\n", err)
		os.Exit(1)
	}
}
