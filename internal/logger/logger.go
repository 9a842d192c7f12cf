package logger

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Logger struct {
	*logrus.Entry
}

var levels = map[string]logrus.Level{
	"debug": logrus.DebugLevel,
	"warn":  logrus.WarnLevel,
	"error": logrus.ErrorLevel,
}

// New logs to stdout.
func New() *Logger {
	return NewWithOutput(os.Stdout)
}

// NewWithOutput builds a logger from ENVIRONMENT and LOG_LEVEL writing to w.
func NewWithOutput(w io.Writer) *Logger {
	base := logrus.New()

	// Local env = pretty console; others = JSON
	if env := os.Getenv("ENVIRONMENT"); env == "" || env == "local" {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
			ForceColors:     true,
		})
	} else {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}
	base.SetOutput(w)

	level, ok := levels[os.Getenv("LOG_LEVEL")]
	if !ok {
		level = logrus.InfoLevel
	}
	base.SetLevel(level)

	return &Logger{Entry: logrus.NewEntry(base)}
}

// WithRun tags every entry of one report run with a fresh run id.
func (l *Logger) WithRun(root string) *Logger {
	return &Logger{Entry: l.Entry.WithFields(logrus.Fields{
		"run_id": uuid.New().String(),
		"root":   root,
	})}
}

// Component returns a child logger for one package.
func (l *Logger) Component(name string) *Logger {
	return &Logger{Entry: l.Entry.WithField("component", name)}
}

// WithError standardizes error logging
func (l *Logger) WithError(err error) *logrus.Entry {
	if err == nil {
		return l.Entry
	}
	return l.Entry.WithField("error", err.Error())
}
