// ABOUTME: Structured logger construction for the CLI, servers and store.
// ABOUTME: Wraps logrus with a level parsed from config or flags.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// DefaultLevel keeps the interactive shell quiet unless asked otherwise.
const DefaultLevel = "warn"

// New returns a logger entry writing text lines to w (stderr when nil).
func New(level string, w io.Writer) (*logrus.Entry, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if w == nil {
		w = os.Stderr
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	return logrus.NewEntry(l).WithField("app", "bbg"), nil
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
