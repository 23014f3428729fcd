// Package logger holds the process-wide charmbracelet logger. Engine packages
// log through the helpers below, which do nothing until Init runs, so library
// callers that never initialize logging pay nothing.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/daylit-engine/internal/constants"
)

// Logger is nil until Init is called.
var Logger *log.Logger

type Config struct {
	// Debug forces debug level, caller reporting and a stderr mirror.
	Debug bool
	// Level is a charmbracelet level name ("warn", "info", ...). Empty means warn.
	Level string
	// JSON writes structured JSON lines instead of logfmt-style text.
	JSON bool
	// LogDir holds the rotating log file. When empty it is derived from DBPath.
	LogDir string
	DBPath string
	// Output replaces the rotating file when set.
	Output io.Writer
}

// Dir returns the directory the log file lives in: LogDir when set, otherwise
// a logs directory beside the database.
func Dir(cfg Config) string {
	if cfg.LogDir != "" {
		return cfg.LogDir
	}
	return filepath.Join(filepath.Dir(cfg.DBPath), constants.DefaultLogDirName)
}

func Init(cfg Config) error {
	level, err := resolveLevel(cfg)
	if err != nil {
		return err
	}
	w, err := newWriter(cfg)
	if err != nil {
		return err
	}

	formatter := log.TextFormatter
	if cfg.JSON {
		formatter = log.JSONFormatter
	}

	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
		Formatter:       formatter,
	})
	return nil
}

func resolveLevel(cfg Config) (log.Level, error) {
	if cfg.Debug {
		return log.DebugLevel, nil
	}
	if cfg.Level == "" {
		return log.WarnLevel, nil
	}
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	return level, nil
}

// newWriter opens the rotating log file, mirrored to stderr in debug mode.
func newWriter(cfg Config) (io.Writer, error) {
	w := cfg.Output
	if w == nil {
		dir := Dir(cfg)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		w = &lumberjack.Logger{
			Filename:   filepath.Join(dir, constants.LogFileName),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}
	if cfg.Debug {
		w = io.MultiWriter(os.Stderr, w)
	}
	return w, nil
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
