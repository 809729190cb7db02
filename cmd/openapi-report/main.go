// Package main provides the entry point for the openapi-report CLI.
package main

import (
	"os"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/GabrielNunesIT/openapi-report/internal/cli"
	"github.com/GabrielNunesIT/openapi-report/internal/config"
)

func main() {
	log := logger.NewConsoleLogger(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.Errorf("Error loading configuration: %v", err)
		os.Exit(1)
	}

	app := cli.New(log, *cfg)
	if err := app.Execute(); err != nil {
		log.Errorf("Error: %v", err)
		os.Exit(1)
	}
}
