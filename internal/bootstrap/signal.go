package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// SignalContext dibatalkan saat proses menerima SIGINT atau SIGTERM.
// context.Cause berisi nama sinyalnya.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(quit)
		select {
		case sig := <-quit:
			cancel(fmt.Errorf("signal %s", sig))
		case <-ctx.Done():
		}
	}()

	return ctx, func() { cancel(context.Canceled) }
}
