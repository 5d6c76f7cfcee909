package main

import (
	"context"
	"log"

	"marketplace-be/internal/bootstrap"
	"marketplace-be/internal/config"
	"marketplace-be/internal/server"
	"marketplace-be/internal/tracer"
	"marketplace-be/pkg/database"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	// 2. Tracing (no-op unless OTEL_ENABLED)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 3. Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Dependency container
	container := bootstrap.NewContainer(gormDB, cfg)

	// 5. Background workers
	go func() {
		log.Println("Background: starting notification consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()
	if container.AuditService != nil {
		container.AuditService.Start()
	}

	// 6. HTTP server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
