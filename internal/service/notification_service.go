package service

import (
	"context"
	"fmt"

	"hotel-booking-be/internal/pkg/logger"
	"hotel-booking-be/internal/pkg/mailer"
	"hotel-booking-be/pkg/events"
)

// NotificationService turns booking lifecycle events into guest emails. It
// consumes the in-process channel, so a slow SMTP server never sits on the
// request path.
type NotificationService struct {
	mailer mailer.IEmailService
	logger logger.ILogger
}

func NewNotificationService(mail mailer.IEmailService, log logger.ILogger) *NotificationService {
	return &NotificationService{mailer: mail, logger: log}
}

// Start attaches the handler to the bus; it returns once subscribed.
func (s *NotificationService) Start(ctx context.Context, bus *events.ChannelBus) error {
	return bus.Subscribe(ctx, s.Handle)
}

func (s *NotificationService) Handle(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	email, _ := payload["email"].(string)
	if email == "" {
		return nil
	}

	referenceCode, _ := payload["reference_code"].(string)
	hotelName, _ := payload["hotel_name"].(string)

	var err error
	switch event.EventType() {
	case events.TypeBookingCreated:
		checkIn, _ := payload["check_in"].(string)
		checkOut, _ := payload["check_out"].(string)
		err = s.mailer.SendBookingConfirmation(email, hotelName, referenceCode, checkIn, checkOut)
	case events.TypeBookingCancelled:
		currency, _ := payload["currency"].(string)
		refund, _ := payload["refund_amount"].(float64)
		err = s.mailer.SendBookingCancellation(email, hotelName, referenceCode, refund, currency)
	default:
		return nil
	}

	if err != nil {
		s.logger.Warn("NOTIFICATION", "Failed to send email", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return fmt.Errorf("send notification for %s: %w", event.EventType(), err)
	}
	return nil
}
