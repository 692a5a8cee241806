// Package logger builds the slog logger used by revenuectl.
package logger

import (
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Level is the process-wide log level shared by every handler built here.
var Level = &level{lvl: &slog.LevelVar{}}

type level struct {
	lvl *slog.LevelVar
}

func (l *level) Enabled(lvl slog.Level) bool {
	return lvl >= l.lvl.Level()
}

func (l *level) Set(lvl slog.Level) {
	l.lvl.Set(lvl)
}

// SetByName sets the level from a name. Unknown names leave it unchanged
// and report false.
func (l *level) SetByName(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "err", "error":
		l.lvl.Set(slog.LevelError)
	case "warn", "warning":
		l.lvl.Set(slog.LevelWarn)
	case "info", "":
		l.lvl.Set(slog.LevelInfo)
	case "debug":
		l.lvl.Set(slog.LevelDebug)
	default:
		return false
	}
	return true
}

// New returns a logger writing to stderr: colored when stderr is a terminal,
// logfmt otherwise.
func New() *slog.Logger {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return slog.New(newTerminalHandler(os.Stderr))
	}
	return slog.New(newTextHandler(os.Stderr))
}

func newTextHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level.lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				lvl := a.Value.Any().(slog.Level)
				return slog.String(a.Key, strings.ToLower(lvl.String()))
			}
			return a
		},
	})
}

func newTerminalHandler(w io.Writer) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		NoColor:    runtime.GOOS == "windows",
		Level:      Level.lvl,
		TimeFormat: "15:04:05",
	})
}
