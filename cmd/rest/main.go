package main

import (
	"context"
	"log"

	"github.com/transformerAnt/orange-fitness-backend/internal/bootstrap"
	"github.com/transformerAnt/orange-fitness-backend/internal/config"
	"github.com/transformerAnt/orange-fitness-backend/internal/server"
	"github.com/transformerAnt/orange-fitness-backend/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 4. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
