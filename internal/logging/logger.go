// Package logging provides the leveled console logger used by every
// picrename surface. Lines keep the "2006-01-02 15:04:05 [LEVEL] text" shape;
// entries are routed by zap to stdout (below ERROR), stderr (ERROR) and an
// optional append-only log file.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/picrename/internal/config"
	"github.com/backmassage/picrename/internal/term"
)

const timeLayout = "2006-01-02 15:04:05"

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	mu      sync.Mutex
	sugar   *zap.SugaredLogger
	success *zap.SugaredLogger
	file    *os.File
}

// NewLogger initializes colors from cfg and optionally opens cfg.LogFile.
// Call Close() when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	color := term.Configure(cfg.ColorMode)

	level := zapcore.InfoLevel
	if cfg.Verbose {
		level = zapcore.DebugLevel
	}
	belowError := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= level && l < zapcore.ErrorLevel
	})

	console := zapcore.Lock(os.Stdout)
	// Machine-readable results own stdout.
	if cfg.Format == config.FormatJSON || cfg.Format == config.FormatYAML {
		console = zapcore.Lock(os.Stderr)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(color), console, belowError),
		zapcore.NewCore(consoleEncoder(color), zapcore.Lock(os.Stderr), zapcore.ErrorLevel),
	}

	var file *os.File
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		file = f
		cores = append(cores, zapcore.NewCore(consoleEncoder(false), zapcore.AddSync(f), level))
	}

	return newLogger(zap.New(zapcore.NewTee(cores...)), file), nil
}

// NewWithWriter returns an uncolored logger writing every level at or above
// INFO (DEBUG when verbose) to w.
func NewWithWriter(w io.Writer, verbose bool) *Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(consoleEncoder(false), zapcore.AddSync(w), level)
	return newLogger(zap.New(core), nil)
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return newLogger(zap.NewNop(), nil)
}

func newLogger(z *zap.Logger, file *os.File) *Logger {
	return &Logger{
		sugar:   z.Sugar(),
		success: z.Named("success").Sugar(),
		file:    file,
	}
}

// consoleEncoder renders "ts [LEVEL] [NAME] message" without caller or
// stack information.
func consoleEncoder(color bool) zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		EncodeTime:       zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeLevel:      levelEncoder(color),
		EncodeName:       nameEncoder(color),
		ConsoleSeparator: " ",
	})
}

func levelEncoder(color bool) zapcore.LevelEncoder {
	return func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		label := "[" + strings.ToUpper(l.String()) + "]"
		if !color {
			enc.AppendString(label)
			return
		}
		var c string
		switch l {
		case zapcore.DebugLevel:
			c = "\033[1;96m"
		case zapcore.InfoLevel:
			c = "\033[1;94m"
		case zapcore.WarnLevel:
			c = "\033[1;93m"
		default:
			c = "\033[1;91m"
		}
		enc.AppendString(c + label + "\033[0m")
	}
}

func nameEncoder(color bool) zapcore.NameEncoder {
	return func(name string, enc zapcore.PrimitiveArrayEncoder) {
		label := "[" + strings.ToUpper(name) + "]"
		if color {
			label = "\033[1;92m" + label + "\033[0m"
		}
		enc.AppendString(label)
	}
}

// Close flushes buffered entries and closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.sugar.Sync()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Success logs at INFO level, tagged [SUCCESS].
func (l *Logger) Success(format string, args ...interface{}) {
	l.success.Infof(format, args...)
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs at ERROR level (stderr).
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Debug logs at DEBUG level; dropped unless the logger was built verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}
