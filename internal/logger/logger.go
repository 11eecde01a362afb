// Package logger holds the process-wide structured logger.
package logger

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Log is shared by every package. Components derive their own entry with
// Log.WithFields(logrus.Fields{"component": ...}).
var Log = logrus.New()

func init() {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	Log.SetLevel(logrus.InfoLevel)
}

// Setup sets the log level by name and, when out is non-nil, the destination.
func Setup(level string, out io.Writer) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	Log.SetLevel(lvl)
	if out != nil {
		Log.SetOutput(out)
	}
	return nil
}

// Component returns an entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return Log.WithFields(logrus.Fields{"component": name})
}
