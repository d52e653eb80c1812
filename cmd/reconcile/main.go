package main

import (
	"context"
	"log"

	"placement-mentor-be/internal/bootstrap"
	"placement-mentor-be/internal/config"
	"placement-mentor-be/pkg/database"
)

// One-shot repair pass: removes detail rows whose summary is gone. Run it
// from cron; the write choreography tolerates orphans but never cleans the
// ones a crash leaves behind.
func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	report, err := container.ReconcileService.Run(context.Background())
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}

	log.Printf("Reconciliation done: %d orphan details found, %d removed",
		report.OrphanDetailsFound, report.OrphanDetailsRemoved)
}
