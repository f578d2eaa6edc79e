package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	httpadapter "taskboard/internal/adapter/http"
	"taskboard/pkg/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpadapter.Run(ctx, config.ServiceUsers); err != nil {
		log.Fatalf("users service: %v", err)
	}
}
