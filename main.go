package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mrlokans/catalog/internal/cli"
	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/logger"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	defer log.Sync()

	version := fmt.Sprintf("%s (%s)", Version, Commit)
	if err := cli.New(cfg, version, log).Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
