package cli

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates the logger shared by every command. Output goes to
// stderr so it never mixes with the report printed on stdout.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	return log
}

// SetLevel applies a textual log level, falling back to info when it does not parse
func SetLevel(log *logrus.Logger, level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("Unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
}
