// Package telemetry is the structured logging collaborator used by the CLI
// and the archive backends, in the same package-level-global shape the teacher's own
// go-datatrails-common/logger wraps around zap: call sites reach for
// telemetry.Log.Debugf(...) rather than threading a logger through every
// constructor.
package telemetry

import (
	"go.uber.org/zap"
)

// Log is the process-wide structured logger. It defaults to a development
// configuration (human-readable, debug level) and can be replaced with
// Init for production use.
var Log = mustSugared(zap.NewDevelopment())

func mustSugared(l *zap.Logger, err error) *zap.SugaredLogger {
	if err != nil {
		panic(err)
	}
	return l.Sugar()
}

// Init replaces Log with a logger built from cfg, returning a function that
// flushes buffered log entries on shutdown.
func Init(cfg zap.Config) (func(), error) {
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	Log = l.Sugar()
	return func() { _ = l.Sync() }, nil
}

// Production swaps Log for a JSON, info-level production logger.
func Production() (func(), error) {
	return Init(zap.NewProductionConfig())
}
