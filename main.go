package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/cmd"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
