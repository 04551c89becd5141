package log

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sarthakvk/tradedeck/config"
)

// NewLogger builds the diagnostic logger. Log lines go to a file under the
// configured log directory so they never interleave with the rendered
// dashboard panels; debug mode mirrors them to stderr.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	outputs := []string{filepath.Join(cfg.LogDir, "tradedeck.log")}
	errOutputs := []string{filepath.Join(cfg.LogDir, "tradedeck.log")}
	if cfg.Debug {
		outputs = append(outputs, "stderr")
		errOutputs = append(errOutputs, "stderr")
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	encoderConfig.TimeKey = "ts"

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      cfg.Debug,
		Encoding:         "json",
		EncoderConfig:    encoderConfig,
		OutputPaths:      outputs,
		ErrorOutputPaths: errOutputs,
		InitialFields:    map[string]interface{}{"service": "tradedeck"},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger, nil
}
