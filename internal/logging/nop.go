package logging

import (
	"context"

	"github.com/goliatone/go-logger/glog"
)

type nopLogger struct{}

func (nopLogger) Trace(string, ...any) {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) Fatal(string, ...any) {}

func (l nopLogger) WithContext(context.Context) glog.Logger {
	return l
}
