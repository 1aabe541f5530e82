// pkg/logging/logging.go
package logging

import (
	"fmt"
	"io"
	stdLog "log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alicepisa/mobileserver/pkg/config"
)

var (
	writerMu  sync.RWMutex
	logWriter io.Writer

	fileMu    sync.Mutex
	logFile   *os.File
	activeLog config.LogConfig
)

// stdLogWriter forwards stdlib log output (e.g. net/http server errors) to zerolog.
type stdLogWriter struct {
	logger zerolog.Logger
	level  zerolog.Level
}

func (w *stdLogWriter) Write(p []byte) (int, error) {
	message := strings.TrimSuffix(string(p), "\n")
	w.logger.WithLevel(w.level).Msg(message)
	return len(p), nil
}

// init keeps the console quiet until the CLI configures logging.
// Logs go to stderr; stdout is reserved for the connection banner.
func init() {
	logWriter = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	log.Logger = zerolog.New(logWriter).Level(zerolog.ErrorLevel).With().Timestamp().Logger()
}

// ConfigureGlobalLogging configures the global logger from LogConfig.
// The returned closer releases the log file, if one was opened.
func ConfigureGlobalLogging(cfg config.LogConfig) (io.Closer, error) {
	fileMu.Lock()
	defer fileMu.Unlock()

	switch {
	case cfg.File != "":
		f, err := openLogFile(cfg.File)
		if err != nil {
			return nil, err
		}
		if logFile != nil {
			_ = logFile.Close()
		}
		logFile = f
		SetLogWriter(fileWriter(f, cfg.Format))
	case cfg.Format == "json":
		SetLogWriter(os.Stderr)
	}

	activeLog = cfg
	ConfigureGlobal(parseLogLevel(cfg.Level))

	if cfg.File == "" {
		return nopCloser{}, nil
	}
	return fileCloser{}, nil
}

// ReopenLogFile closes and re-opens the configured log file so an external
// rotation tool can move the old one aside. It is a no-op when logging to
// the console.
func ReopenLogFile() error {
	fileMu.Lock()
	defer fileMu.Unlock()

	if activeLog.File == "" {
		return nil
	}

	f, err := openLogFile(activeLog.File)
	if err != nil {
		return err
	}

	old := logFile
	logFile = f
	SetLogWriter(fileWriter(f, activeLog.Format))
	ConfigureGlobal(zerolog.GlobalLevel())

	if old != nil {
		return old.Close()
	}
	return nil
}

func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func fileWriter(f *os.File, format string) io.Writer {
	if format == "json" {
		return f
	}
	return zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339, NoColor: true}
}

// ConfigureGlobal sets the global level and rebuilds the global logger on
// the current writer. stdlib log output is routed through zerolog.
func ConfigureGlobal(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)

	logContext := zerolog.New(globalWriter{}).With().Timestamp()
	if level <= zerolog.DebugLevel {
		logContext = logContext.Caller()
	}

	log.Logger = logContext.Logger().Level(level)
	zerolog.DefaultContextLogger = &log.Logger

	stdLog.SetFlags(0)
	stdLog.SetOutput(&stdLogWriter{logger: log.Logger, level: zerolog.DebugLevel})
}

// NewLogger returns a component logger on the global writer. It follows
// later SetLogWriter calls, including log file reopening.
func NewLogger(component string, level zerolog.Level) zerolog.Logger {
	return NewLoggerWithWriter(component, level, globalWriter{})
}

// NewLoggerWithWriter returns a component logger writing JSON to w.
func NewLoggerWithWriter(component string, level zerolog.Level, w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

// StdLogger adapts a zerolog logger for APIs that want a *log.Logger,
// such as http.Server.ErrorLog.
func StdLogger(logger zerolog.Logger, level zerolog.Level) *stdLog.Logger {
	return stdLog.New(&stdLogWriter{logger: logger, level: level}, "", 0)
}

// VerbosityLevel maps a -v count onto a level, never raising base.
func VerbosityLevel(base zerolog.Level, count int) zerolog.Level {
	var lvl zerolog.Level
	switch {
	case count <= 0:
		return base
	case count == 1:
		lvl = zerolog.DebugLevel
	default:
		lvl = zerolog.TraceLevel
	}
	if lvl < base {
		return lvl
	}
	return base
}

// ParseLevel converts a string log level to zerolog.Level, defaulting to info.
func ParseLevel(levelString string) zerolog.Level {
	return parseLogLevel(levelString)
}

func parseLogLevel(levelString string) zerolog.Level {
	if levelString == "" {
		return zerolog.InfoLevel
	}

	level, err := zerolog.ParseLevel(strings.ToLower(levelString))
	if err != nil {
		log.Warn().Err(err).
			Str("logLevel", levelString).
			Msg("Invalid log level provided. Defaulting to info level.")
		return zerolog.InfoLevel
	}
	return level
}

// globalWriter resolves the current log writer on every write.
type globalWriter struct{}

func (globalWriter) Write(p []byte) (int, error) {
	return getLogWriter().Write(p)
}

func getLogWriter() io.Writer {
	writerMu.RLock()
	defer writerMu.RUnlock()
	return logWriter
}

// SetLogWriter sets the global log writer.
func SetLogWriter(w io.Writer) {
	writerMu.Lock()
	defer writerMu.Unlock()
	logWriter = w
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// fileCloser closes whichever log file is current, which may have been
// replaced by ReopenLogFile since ConfigureGlobalLogging returned.
type fileCloser struct{}

func (fileCloser) Close() error {
	fileMu.Lock()
	defer fileMu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	activeLog.File = ""
	return err
}
