package utils

import (
	"fmt"
	"os"
	"path"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	loggersMu sync.Mutex
	loggers   = map[string]*logrus.Logger{}
	logLevel  = logrus.InfoLevel
)

// NamedLogger creates (or returns the existing) package logger registered under name.
func NamedLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	if l, ok := loggers[name]; ok {
		return l
	}
	l := &logrus.Logger{
		Out: os.Stderr,
		Formatter: &CustomTextFormatter{
			TextFormatter: logrus.TextFormatter{
				DisableTimestamp: true,
			},
			Name: name,
		},
		Hooks:        make(logrus.LevelHooks),
		Level:        logLevel,
		ReportCaller: true,
		ExitFunc:     os.Exit,
	}
	loggers[name] = l
	return l
}

// SetLogLevel changes the level of every named logger, including ones created later
func SetLogLevel(level string) (err error) {
	var lvl logrus.Level
	if lvl, err = logrus.ParseLevel(level); err != nil {
		return
	}
	loggersMu.Lock()
	defer loggersMu.Unlock()
	logLevel = lvl
	for _, l := range loggers {
		l.SetLevel(lvl)
	}
	return
}

// CustomTextFormatter prefixes the message with the package name and the calling file:line
type CustomTextFormatter struct {
	logrus.TextFormatter
	Name string
}

// Format renders a single log entry
func (f *CustomTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry.HasCaller() {
		entry.Message = fmt.Sprintf("[%-10s %-15s:%03d] %s", f.Name,
			path.Base(entry.Caller.File), entry.Caller.Line, entry.Message)
		// the caller is already in the message
		entry.Caller = nil
	} else {
		entry.Message = fmt.Sprintf("[%-10s] %s", f.Name, entry.Message)
	}
	return f.TextFormatter.Format(entry)
}
