package log

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gobuffalo/buffalo"
	"github.com/sirupsen/logrus"

	"github.com/silinternational/abs-insurance-api/domain"
)

const ContextKeySentryHub = "sentry_hub"

var mapLogrusToSentryLevel = map[logrus.Level]sentry.Level{
	logrus.PanicLevel: sentry.LevelFatal,
	logrus.FatalLevel: sentry.LevelFatal,
	logrus.ErrorLevel: sentry.LevelError,
	logrus.WarnLevel:  sentry.LevelWarning,
	logrus.InfoLevel:  sentry.LevelInfo,
	logrus.DebugLevel: sentry.LevelDebug,
	logrus.TraceLevel: sentry.LevelDebug,
}

// statuses that are expected client outcomes and not worth an alert
var quietStatuses = map[any]struct{}{
	http.StatusUnauthorized: {},
	http.StatusForbidden:    {},
	http.StatusNotFound:     {},
	http.StatusConflict:     {},
}

type SentryHook struct {
	hub *sentry.Hub
}

// SentryMiddleware attaches a per-request hub and reports panics before re-raising them
func SentryMiddleware(next buffalo.Handler) buffalo.Handler {
	return func(c buffalo.Context) error {
		r := c.Request()
		hub := sentry.GetHubFromContext(r.Context())

		if hub == nil {
			hub = sentry.CurrentHub().Clone()
		}

		hub.Scope().SetRequest(r)
		defer recoverWithSentry(hub, r)
		c.Set(ContextKeySentryHub, hub)
		return next(c)
	}
}

func recoverWithSentry(hub *sentry.Hub, r *http.Request) {
	if err := recover(); err != nil {
		eventID := hub.RecoverWithContext(
			context.WithValue(r.Context(), sentry.RequestContextKey, r),
			err,
		)
		if eventID != nil {
			hub.Flush(time.Second * 2)
		}
		panic(err)
	}
}

func (s *SentryHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}
}

func (s *SentryHook) Fire(entry *logrus.Entry) error {
	extras := entry.Data

	if _, quiet := quietStatuses[extras["status"]]; quiet {
		return nil
	}

	event := sentry.Event{
		Extra:   extras,
		Level:   mapLogrusToSentryLevel[entry.Level],
		Message: entry.Message,
	}

	hub := s.hub
	if c, ok := entry.Context.(buffalo.Context); ok {
		event.Request = sentry.NewRequest(c.Request())
		if h, ok := c.Value(ContextKeySentryHub).(*sentry.Hub); ok {
			hub = h
		}
	}

	hub.CaptureEvent(&event)
	return nil
}

// NewSentryHook initializes the sentry client. It returns nil when no DSN is configured.
func NewSentryHook(env, commit string) *SentryHook {
	if domain.Env.SentryDSN == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              domain.Env.SentryDSN,
		Environment:      env,
		Release:          commit,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		panic(fmt.Sprintf("sentry.Init: %s", err))
	}

	return &SentryHook{hub: sentry.CurrentHub()}
}
