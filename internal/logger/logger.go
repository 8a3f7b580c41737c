// Package logger builds the application logger.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file created under Config.Dir.
const FileName = "nixie.log"

// Config holds logger configuration.
type Config struct {
	Debug bool
	// Dir receives the rotating log file.
	Dir string
	// Mirror also writes to stderr in debug mode. It must stay off while
	// the front panel owns the terminal.
	Mirror bool
}

// New returns a logger writing to a rotating file. The closer releases
// the file.
func New(cfg Config) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, nil, err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, FileName),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	var writer io.Writer = fileWriter
	if cfg.Debug && cfg.Mirror {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	logger := log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "nixie",
	})
	return logger, fileWriter, nil
}
