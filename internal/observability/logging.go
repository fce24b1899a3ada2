// Package observability builds the structured logger shared by the binaries.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/skirmish/internal/config"
)

// OutputOff disables logging entirely.
const OutputOff = "off"

// NewLogger creates the process logger from cfg. Stdout is never a sink since
// the battle transcript owns it.
//
// Precondition: cfg passed config validation.
// Postcondition: Returns a logger named "skirmish", a no-op logger when
// cfg.Output is OutputOff, or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	if cfg.Output == OutputOff {
		return zap.NewNop(), nil
	}
	if cfg.Output == "stdout" {
		return nil, fmt.Errorf("log output %q would interleave with the transcript", cfg.Output)
	}

	var enc zapcore.EncoderConfig
	switch cfg.Format {
	case "json":
		enc = zap.NewProductionEncoderConfig()
	case "console":
		enc = zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	enc.EncodeTime = zapcore.ISO8601TimeEncoder

	output := cfg.Output
	if output == "" {
		output = "stderr"
	}
	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Encoding:          cfg.Format,
		EncoderConfig:     enc,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: level > zapcore.DebugLevel,
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Named("skirmish"), nil
}

// ForRun tags logger with the battle seed so a transcript can be replayed
// from its log.
func ForRun(logger *zap.Logger, seed uint32) *zap.Logger {
	return logger.With(zap.Uint32("seed", seed))
}
