// Package log is the one shared structured logger used across campsched.
// The package-level Init/L split keeps call sites from threading a
// *zap.Logger through every function signature.
package log

import "go.uber.org/zap"

var logger *zap.Logger

// Init sets up the package-level logger. prod selects zap's production
// (JSON, info level) config over its development (console, debug level)
// config. Safe to call more than once; later calls are no-ops.
func Init(prod bool) error {
	if logger != nil {
		return nil
	}
	var err error
	if prod {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	return err
}

// L returns the shared logger. Panics if Init has not been called, the
// same contract callers already rely on.
func L() *zap.Logger {
	if logger == nil {
		panic("log: Init not called")
	}
	return logger
}
