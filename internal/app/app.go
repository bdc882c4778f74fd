// Package app wires the analysis pipeline together: input discovery,
// loading, classification, extraction, report building and rendering.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/sonomirco/defgraph/internal/config"
	"github.com/sonomirco/defgraph/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	appConfig *Config
	analyzer  *config.Config
}

// NewApp constructs a fully initialized App with its own isolated logger
// and a loaded analyzer configuration.
func NewApp(outW, logW io.Writer, appConfig *Config) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	analyzerCfg, err := config.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load analyzer configuration: %w", err)
	}
	logger.Debug("Analyzer configuration ready.", "tokens", len(analyzerCfg.Tokens))

	return &App{
		outW:      outW,
		logger:    logger,
		appConfig: appConfig,
		analyzer:  analyzerCfg,
	}, nil
}
