package main

import (
	"context"
	"log"

	"placement-mentor-be/internal/bootstrap"
	"placement-mentor-be/internal/config"
	"placement-mentor-be/internal/server"
	"placement-mentor-be/internal/tracer"
	"placement-mentor-be/pkg/database"
)

func main() {
	// 0. Initialize tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load configuration
	cfg := config.Load()

	// 2. Initialize database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap dependencies
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start the orphan-cleanup consumer
	if err := container.CleanupService.Consume(context.Background()); err != nil {
		log.Printf("Background cleanup consumer error: %v", err)
	}

	// 5. Run server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
