// Package logger wraps logrus with the small amount of configuration
// this tool needs.
package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger.
type Logger struct {
	*logrus.Logger
}

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	Output io.Writer
}

// New creates a logger with the given configuration.
func New(config Config) (*Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	switch config.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	if config.Output != nil {
		log.SetOutput(config.Output)
	}

	return &Logger{Logger: log}, nil
}

// WithComponent returns an entry tagged with the component name.
func (l *Logger) WithComponent(component string) *logrus.Entry {
	return l.WithField("component", component)
}

// Discard returns a logger that drops everything, for tests and for
// callers that did not configure logging.
func Discard() *Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Logger{Logger: log}
}
