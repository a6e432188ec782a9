package log

import (
	"os"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/logger"
	"github.com/sirupsen/logrus"

	"github.com/silinternational/abs-insurance-api/domain"
)

var l = logrus.New()

func init() {
	l.SetOutput(os.Stdout)
	if domain.Env.GoEnv == domain.EnvDevelopment || domain.Env.GoEnv == domain.EnvTest {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
		l.SetLevel(logrus.InfoLevel)
	}
}

// Init attaches the Sentry hook, if SENTRY_DSN is configured
func Init(commit string) {
	if hook := NewSentryHook(domain.Env.GoEnv, commit); hook != nil {
		l.AddHook(hook)
	}
}

// BuffaloLogger adapts the application logger for buffalo.Options
func BuffaloLogger() logger.FieldLogger {
	return logger.Logrus{FieldLogger: l}
}

// WithContext returns a log entry carrying the request extras and the buffalo context
func WithContext(c buffalo.Context) *logrus.Entry {
	return l.WithContext(c).WithFields(domain.GetExtras(c))
}

func WithFields(fields map[string]any) *logrus.Entry {
	return l.WithFields(fields)
}

func Error(args ...any) {
	l.Error(args...)
}

func Errorf(format string, args ...any) {
	l.Errorf(format, args...)
}

func Warning(args ...any) {
	l.Warning(args...)
}

func Warningf(format string, args ...any) {
	l.Warningf(format, args...)
}

func Info(args ...any) {
	l.Info(args...)
}

func Infof(format string, args ...any) {
	l.Infof(format, args...)
}

func Debugf(format string, args ...any) {
	l.Debugf(format, args...)
}

func Fatal(args ...any) {
	l.Fatal(args...)
}
