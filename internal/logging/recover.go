package logging

import (
	"context"
	"runtime/debug"
)

// Recover logs a recovered panic with its stack trace and swallows it.
// Deferred at the top of each hot-reload watcher goroutine and of every
// main-loop tick, so one widget's misbehaving backend cannot bring down the
// shell's main loop. The hotkey and tray goroutines do not defer it.
func Recover(ctx context.Context, goroutine string) {
	if r := recover(); r != nil {
		FromContext(ctx).Error().
			Str("goroutine", goroutine).
			Interface("panic", r).
			Bytes("stack", debug.Stack()).
			Msg("recovered from panic")
	}
}
