package utils

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// InitSentry initializes Sentry for error tracking. An empty DSN disables reporting.
func InitSentry(dsn string) bool {
	if dsn == "" {
		logrus.Info("Sentry disabled, no SENTRY_DSN configured")
		return false
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		EnableTracing:    true,
		TracesSampleRate: 0.2,
	})
	if err != nil {
		logrus.Errorf("sentry.Init: %s", err)
		return false
	}

	logrus.Info("Sentry initialized")
	return true
}

// FlushSentry waits for buffered events before shutdown
func FlushSentry() {
	sentry.Flush(2 * time.Second)
}

// CaptureError reports an error to Sentry; no-op when Sentry is not initialized
func CaptureError(err error) {
	if err == nil {
		return
	}
	sentry.CaptureException(err)
}
