// Package logger wraps a process-wide zerolog.Logger that writes to stderr.
// Standard output is left for converted data.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)

func Log() *zerolog.Logger {
	return &log
}

// SetConsoleWriter switches to human readable output on stderr
func SetConsoleWriter() {
	SetWriter(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05.000",
	})
}

// SetJsonWriter switches to one JSON object per line on stderr
func SetJsonWriter() {
	SetWriter(os.Stderr)
}

// SetWriter keeps the current level and sends output to w
func SetWriter(w io.Writer) {
	level := log.GetLevel()
	log = zerolog.New(w).With().Timestamp().Logger().Level(level)
}

func SetLogger(logger zerolog.Logger) {
	log = logger
}

// SetLevel parses a level name such as "debug" or "warn"
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log = log.Level(lvl)
	return nil
}

// Configure applies a level and a format ("console" or "json")
func Configure(level, format string) error {
	switch format {
	case "", "console":
		SetConsoleWriter()
	case "json":
		SetJsonWriter()
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	if level == "" {
		return nil
	}
	return SetLevel(level)
}

// doLog treats args as key/value pairs; a trailing unpaired string is the message
func doLog(event *zerolog.Event, args []interface{}) {
	if event == nil {
		return
	}

	msg := ""
	if len(args)%2 == 1 {
		if s, ok := args[len(args)-1].(string); ok {
			msg = s
		} else {
			msg = fmt.Sprint(args[len(args)-1])
		}
		args = args[:len(args)-1]
	}

	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		switch v := args[i+1].(type) {
		case string:
			event.Str(key, v)
		case int:
			event.Int(key, v)
		case bool:
			event.Bool(key, v)
		case time.Duration:
			event.Str(key, v.String())
		case time.Time:
			event.Time(key, v)
		case error:
			event.AnErr(key, v)
		case []string:
			event.Strs(key, v)
		default:
			event.Interface(key, v)
		}
	}

	event.Msg(msg)
}

// Debug logs at debug level: Debug("file", path, "message")
func Debug(args ...interface{}) {
	doLog(log.Debug(), args)
}

// Info logs at info level
func Info(args ...interface{}) {
	doLog(log.Info(), args)
}

// Warn logs at warn level
func Warn(args ...interface{}) {
	doLog(log.Warn(), args)
}

// Error logs err at error level
func Error(err error, args ...interface{}) {
	doLog(log.Error().Err(err), args)
}
