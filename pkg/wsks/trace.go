package wsks

import (
	"log"
	"os"
	"sync/atomic"
)

// Lightweight, opt-in tracing for the saturation loop and the subsumption
// engine. Enable by setting env var WSKS_TRACE=1 or by calling EnableTrace.
// This mirrors the teacher's GOKANDO_WFS_TRACE convention exactly: a single
// atomically-flipped flag guarding log.Printf, never a structured logging
// dependency, since the core's diagnostic surface is this small.

var traceEnabled atomic.Bool

func init() {
	if os.Getenv("WSKS_TRACE") == "1" {
		traceEnabled.Store(true)
	}
}

// EnableTrace turns on debug tracing for the remainder of the process.
func EnableTrace() { traceEnabled.Store(true) }

// DisableTrace turns off debug tracing.
func DisableTrace() { traceEnabled.Store(false) }

func tracef(format string, args ...any) {
	if !traceEnabled.Load() {
		return
	}
	log.Printf("[wsks] "+format, args...)
}
