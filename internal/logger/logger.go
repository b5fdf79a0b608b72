package logger

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	log  *logrus.Logger
	once sync.Once
)

// Init configures the process-wide logger. Production uses JSON output,
// everything else uses text with full timestamps.
func Init(level, env string) *logrus.Logger {
	l := Get()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if env == "production" || env == "prod" || env == "release" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return l
}

// Get returns the shared logger, creating an info-level one on first use.
func Get() *logrus.Logger {
	once.Do(func() {
		log = logrus.New()
		log.SetLevel(logrus.InfoLevel)
	})
	return log
}
