package testseason

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/okian/ploffs/pkg/logger"
)

const logFilePermission = 0600

// SetupLogging configures logging to the console and, when logFile is set,
// to that file as well. The returned func closes the file.
func SetupLogging(logFile string, verbose bool) (func(), error) {
	level := "info"
	if verbose {
		level = "debug"
	}
	if logFile == "" {
		if err := logger.Init(logger.WithLevel(level)); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		return func() {}, nil
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	if err := logger.Init(logger.WithLevel(level), logger.WithWriter(io.MultiWriter(os.Stderr, file))); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return func() { _ = file.Close() }, nil
}
