package logging

import (
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
)

// Provider hands out named loggers. *glog.BaseLogger satisfies it.
type Provider interface {
	GetLogger(name string) glog.Logger
}

var _ Provider = (*glog.BaseLogger)(nil)

// New builds the process logger. format is "pretty" or "plain"; level is
// one of trace, debug, info, warn, error. Unknown levels fall back to info.
func New(name, format, level string) *glog.BaseLogger {
	lvl := glog.Info
	switch level {
	case "trace":
		lvl = glog.Trace
	case "debug":
		lvl = glog.Debug
	case "warn":
		lvl = glog.Warn
	case "error":
		lvl = glog.Error
	}

	if format == "plain" {
		return glog.NewLogger(
			glog.WithLevel(lvl),
			glog.WithName(name),
			glog.WithAddSource(false),
			glog.WithRichErrorHandler(errors.ToSlogAttributes),
		)
	}

	return glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(lvl),
		glog.WithName(name),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)
}

// Discard returns a provider whose loggers drop every entry
func Discard() Provider {
	return glog.ProviderFromLogger(nopLogger{})
}
