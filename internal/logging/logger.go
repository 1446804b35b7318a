package logging

import (
	"go.uber.org/zap"
)

// Logger is the minimal structured logging surface used across the codebase.
type Logger interface {
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

// New returns a development-friendly structured logger writing to stderr so
// stdout stays clean for rendered output and structured streams.
func New() (Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

type nopLogger struct{}

func (nopLogger) Infow(string, ...interface{})  {}
func (nopLogger) Warnw(string, ...interface{})  {}
func (nopLogger) Errorw(string, ...interface{}) {}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}
