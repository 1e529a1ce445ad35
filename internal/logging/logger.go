package logging

import (
	"io"
	"log"
	"os"
	"sync/atomic"
)

// Loggers for the different output streams
var (
	infoLogger  = log.New(os.Stdout, "", log.LstdFlags)
	errorLogger = log.New(os.Stderr, "", log.LstdFlags)

	debugEnabled atomic.Bool
)

// SetDebug toggles debug-level diagnostics.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

// SetOutput redirects both loggers, mostly for tests.
func SetOutput(info, errs io.Writer) {
	infoLogger.SetOutput(info)
	errorLogger.SetOutput(errs)
}

// Debugf prints messages only if debug is enabled
func Debugf(format string, args ...interface{}) {
	if debugEnabled.Load() {
		infoLogger.Printf("[DEBUG] "+format, args...)
	}
}

func Infof(format string, args ...interface{}) {
	infoLogger.Printf("[INFO] "+format, args...)
}

func Errorf(format string, args ...interface{}) {
	errorLogger.Printf("[ERROR] "+format, args...)
}
