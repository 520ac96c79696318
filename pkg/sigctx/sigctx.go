package sigctx

import (
	"context"
	"os/signal"
	"syscall"
)

// NotifyContext is canceled on the first interrupt or termination signal.
func NotifyContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
}
