package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/laborconnect/internal/seeder"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := seeder.Main(ctx)
	stop()
	os.Exit(code)
}
