package lrucache

import "go.uber.org/zap"

// Logger receives structured diagnostics for resize and flush events. It
// is satisfied directly by *zap.SugaredLogger.
type Logger interface {
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
}

// nopLogger discards everything. It is the default installed by Init.
type nopLogger struct{}

func (nopLogger) Infow(string, ...interface{}) {}
func (nopLogger) Warnw(string, ...interface{}) {}

// NewProductionLogger builds a zap production logger and returns its
// sugared form, which satisfies Logger directly. Callers that don't want
// zap logging can simply not call this and rely on SetLogger(nil) / the
// nopLogger default instead; the package imports zap either way.
func NewProductionLogger() (Logger, error) {
	z, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return z.Sugar(), nil
}
