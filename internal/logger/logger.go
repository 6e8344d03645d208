// Package logger owns the process-wide structured logger.
package logger

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Log is the base entry every component derives from. It carries the
// session id once Setup has run.
var Log = logrus.NewEntry(logrus.StandardLogger())

// Session identifies this process run in every log line.
var Session = uuid.NewString()

// Setup configures level and output and attaches the session field.
func Setup(level string, out io.Writer) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	if out == nil {
		out = os.Stderr
	}

	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(lvl)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	Log = base.WithField("session", Session)
	return nil
}

// For returns an entry tagged with a component name.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
