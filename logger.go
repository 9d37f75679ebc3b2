package hme

import (
	"github.com/sirupsen/logrus"
)

// Logger is the minimal logging surface a Session needs, mirroring
// firestige-Otus/otus-packet/pkg/log/logrus.go's shape: formatted
// methods for the common levels, plain methods for pre-formatted
// messages, and WithField(s) for attaching structured context to a
// burst of related log lines (e.g. a resource id or view id).
type Logger interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	Trace(args ...interface{})
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})

	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

// logrusLogger adapts logrus.Ext1FieldLogger (satisfied by both
// *logrus.Logger and *logrus.Entry) to Logger, narrowing WithField(s)'
// return type from *logrus.Entry back to Logger so chained calls stay
// within this package's interface.
type logrusLogger struct {
	logrus.Ext1FieldLogger
}

func (l *logrusLogger) WithField(key string, value interface{}) Logger {
	return &logrusLogger{l.Ext1FieldLogger.WithField(key, value)}
}

func (l *logrusLogger) WithFields(fields map[string]interface{}) Logger {
	return &logrusLogger{l.Ext1FieldLogger.WithFields(logrus.Fields(fields))}
}

// defaultLogger returns a logrus logger writing at Info level, used when
// a Session is constructed without WithLogger.
func defaultLogger() Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	return &logrusLogger{l}
}

// nopLogger discards everything; not used by default but kept available
// for callers who want WithLogger(hme.NopLogger()) in tests.
type nopLogger struct{}

func (nopLogger) Tracef(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

func (nopLogger) Trace(...interface{}) {}
func (nopLogger) Debug(...interface{}) {}
func (nopLogger) Info(...interface{})  {}
func (nopLogger) Warn(...interface{})  {}
func (nopLogger) Error(...interface{}) {}

func (l nopLogger) WithField(string, interface{}) Logger     { return l }
func (l nopLogger) WithFields(map[string]interface{}) Logger { return l }

// NopLogger returns a Logger that discards every message.
func NopLogger() Logger { return nopLogger{} }
