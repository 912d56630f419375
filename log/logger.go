// Package log routes every gobackdrop package through one leveled,
// module-tagged go-logging backend.
package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

type Level int

// The levels that can be passed to SetLevel, from most to least verbose.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levels = [...]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{level:.4s} [%{module}]%{color:reset} %{message}`,
)

var backend logging.LeveledBackend

// Logger is the subset of *logging.Logger the packages write through.
type Logger interface {
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Noticef(format string, v ...interface{})
	Warning(v ...interface{})
	Warningf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns a logger tagged with the given module name.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink sends all output to w, keeping the current level.
func SetSink(w io.Writer) {
	level := levels[Notice]
	if backend != nil {
		level = backend.GetLevel("")
	}
	backend = logging.AddModuleLevel(logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), format))
	backend.SetLevel(level, "")
	logging.SetBackend(backend)
}

// SetLevel sets the verbosity for all modules. Unknown levels are ignored.
func SetLevel(level Level) {
	if level < Debug || level > Error {
		return
	}
	backend.SetLevel(levels[level], "")
}

func init() {
	SetSink(os.Stdout)
}
