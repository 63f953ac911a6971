package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	envLogDir    = "TFGATE_LOG_DIR"
	envLogLevel  = "TFGATE_LOG_LEVEL"
	envLogStderr = "TFGATE_LOG_STDERR"

	logFileName = "tfgate.log"
)

var (
	log = zerolog.New(io.Discard)
)

// Logging configures the process logger from the environment and attaches it to ctx.
// The returned cleanup func closes the log file, if one was opened.
func Logging(ctx context.Context) (context.Context, func(), error) {
	cleanup := func() {}

	var (
		levelString = os.Getenv(envLogLevel)
		level       = zerolog.InfoLevel
		err         error
	)
	if levelString != "" {
		level, err = zerolog.ParseLevel(levelString)
		if err != nil {
			return ctx, cleanup, fmt.Errorf("unable to parse log level from %s: %w", envLogLevel, err)
		}
	}

	var output io.Writer
	switch {
	case os.Getenv(envLogStderr) != "":
		output = os.Stderr
		if isatty.IsTerminal(os.Stderr.Fd()) {
			output = zerolog.ConsoleWriter{Out: os.Stderr}
		}
	default:
		logDir := logDirectory()
		if logDir == "" {
			output = io.Discard
			break
		}
		lj := &lumberjack.Logger{
			Filename:   filepath.Join(logDir, logFileName),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		output = lj
		cleanup = func() {
			lj.Close()
		}
	}

	logContext := zerolog.New(output).
		Level(level).
		With().
		Timestamp()
	if level <= zerolog.DebugLevel {
		logContext = logContext.Caller()
	}

	log = logContext.Logger()

	ctx = log.WithContext(ctx)
	return ctx, cleanup, nil
}

func Logger() *zerolog.Logger {
	return &log
}

func logDirectory() string {
	if dir := os.Getenv(envLogDir); dir != "" {
		return dir
	}

	cacheDir, _ := os.UserCacheDir()
	if cacheDir == "" {
		return ""
	}
	dir := filepath.Join(cacheDir, "tfgate")
	if err := os.Mkdir(dir, os.ModeDir|0700); err != nil && !os.IsExist(err) {
		return ""
	}
	return dir
}
