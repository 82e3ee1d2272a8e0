// Package log provides the lanchat logging backend, based around the
// go-logging package.
//
// Components that follow the pion convention take a logging.LoggerFactory
// instead; Backend.LoggerFactory adapts the same backend for them.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	pionlog "github.com/pion/logging"
	"gopkg.in/op/go-logging.v1"
)

// Backend is a log backend.
type Backend struct {
	w       io.Writer
	backend logging.LeveledBackend
}

// GetLogger returns a per-module logger that writes to the backend.
func (b *Backend) GetLogger(module string) *logging.Logger {
	l := logging.MustGetLogger(module)
	l.SetBackend(b.backend)
	return l
}

// LoggerFactory returns a pion-style logger factory writing to the backend.
func (b *Backend) LoggerFactory() pionlog.LoggerFactory {
	return &factory{b: b}
}

// Close closes the log file, if any.
func (b *Backend) Close() error {
	if c, ok := b.w.(io.Closer); ok && b.w != os.Stderr && b.w != os.Stdout {
		return c.Close()
	}
	return nil
}

// New initializes a logging backend. An empty f logs to stderr, which keeps
// log lines apart from the chat prompt on stdout.
func New(f string, level string, disable bool) (*Backend, error) {
	b := new(Backend)

	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	switch {
	case disable:
		b.w = io.Discard
	case f == "":
		b.w = os.Stderr
	default:
		const fileMode = 0o600

		flags := os.O_CREATE | os.O_APPEND | os.O_WRONLY
		b.w, err = os.OpenFile(f, flags, fileMode)
		if err != nil {
			return nil, fmt.Errorf("log: failed to create log file: %w", err)
		}
	}

	logFmt := logging.MustStringFormatter("%{time:15:04:05.000} %{level:.4s} %{module}: %{message}")
	base := logging.NewLogBackend(b.w, "", 0)
	formatted := logging.NewBackendFormatter(base, logFmt)
	b.backend = logging.AddModuleLevel(formatted)
	b.backend.SetLevel(lvl, "")
	return b, nil
}

// NewDiscard returns a backend that drops everything. Used by tests.
func NewDiscard() *Backend {
	b, err := New("", "ERROR", true)
	if err != nil {
		panic(err)
	}
	return b
}

// ParseLevel maps a configuration level name to a go-logging level.
func ParseLevel(l string) (logging.Level, error) {
	switch strings.ToUpper(l) {
	case "ERROR":
		return logging.ERROR, nil
	case "WARNING", "WARN":
		return logging.WARNING, nil
	case "NOTICE":
		return logging.NOTICE, nil
	case "INFO":
		return logging.INFO, nil
	case "DEBUG":
		return logging.DEBUG, nil
	default:
		return logging.CRITICAL, fmt.Errorf("log: invalid level: '%v'", l)
	}
}
