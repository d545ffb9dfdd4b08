// Package main runs the character controller demo.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/charctl/internal/config"
	"github.com/Faultbox/charctl/internal/game"
	"github.com/Faultbox/charctl/internal/logger"
	"github.com/Faultbox/charctl/internal/report"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== charctl ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	reporter, err := report.New(report.Options{
		DSN:         cfg.Reporting.SentryDSN,
		Environment: cfg.Reporting.Environment,
	})
	if err != nil {
		logger.Warn("failure reporting disabled", zap.Error(err))
		reporter = &report.Reporter{}
	}
	defer reporter.Flush()

	g, err := game.New(cfg, reporter)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("game error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("game closed normally")
}
