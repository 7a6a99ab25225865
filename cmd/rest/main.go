package main

import (
	"context"
	"log"

	"hotel-booking-be/internal/bootstrap"
	"hotel-booking-be/internal/config"
	"hotel-booking-be/internal/server"
	"hotel-booking-be/internal/tracer"
	"hotel-booking-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	if cfg.App.NotificationsViaNats {
		log.Println("In-process notifications disabled; cmd/worker drains the event stream")
	} else if err := container.NotificationService.Start(context.Background(), container.EventBus); err != nil {
		log.Printf("Background Notification Error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
