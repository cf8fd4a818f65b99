package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
	log.SetOutput(os.Stdout)
}

// Get returns the shared application logger.
func Get() *logrus.Logger {
	return log
}

// SetLevel adjusts the logger level from a config string; unknown values keep info.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return
	}
	log.SetLevel(parsed)
}

// WithModule returns an entry tagged with the originating module and function.
func WithModule(module, funcName string) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"module":   module,
		"funcName": funcName,
	})
}
