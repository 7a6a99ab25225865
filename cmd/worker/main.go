package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hotel-booking-be/internal/config"
	"hotel-booking-be/internal/pkg/logger"
	"hotel-booking-be/internal/pkg/mailer"
	"hotel-booking-be/internal/service"
	"hotel-booking-be/pkg/nats"
)

// Notification worker: drains the durable event stream and mails guests.
// Run the API with NOTIFICATIONS_VIA_NATS=true so the in-process consumer
// stays off and each event is mailed exactly once.
func main() {
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	sub, err := nats.NewSubscriber(cfg.App.NatsURL, sysLogger)
	if err != nil {
		log.Fatalf("Unable to connect to NATS: %v", err)
	}
	defer sub.Close()

	notifications := service.NewNotificationService(emailService, sysLogger)
	if err := sub.Subscribe(context.Background(), "notifications", notifications.Handle); err != nil {
		log.Fatalf("Unable to attach notification consumer: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}
