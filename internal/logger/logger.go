// Package logger holds the process-wide zap logger shared by the API, the
// web site and the worker. Every binary calls Init once in main and the
// rest of the code reaches the logger through Get.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the global logger. "production" selects the JSON encoder,
// anything else the console encoder. Calling it again is a no-op.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		if env == "production" {
			base, err = zap.NewProduction()
		} else {
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger, initializing a development logger
// when Init was never called. Tests rely on that fallback.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes buffered entries. Deferred in every main.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
