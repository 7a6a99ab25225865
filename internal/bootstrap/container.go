package bootstrap

import (
	"context"
	"log"

	"hotel-booking-be/internal/config"
	"hotel-booking-be/internal/controller"
	"hotel-booking-be/internal/pkg/logger"
	"hotel-booking-be/internal/pkg/mailer"
	"hotel-booking-be/internal/repository/unitofwork"
	"hotel-booking-be/internal/service"
	"hotel-booking-be/pkg/booking/capacity"
	"hotel-booking-be/pkg/currency"
	"hotel-booking-be/pkg/events"
	"hotel-booking-be/pkg/locks"
	pktNats "hotel-booking-be/pkg/nats"
	"hotel-booking-be/pkg/payment"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	BookingController controller.IBookingController
	HotelController   controller.IHotelController
	AdminController   controller.IAdminController

	// Background services (exposed for main.go to run)
	NotificationService *service.NotificationService
	EventBus            *events.ChannelBus

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	// 2. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis (backs the night locks)
	var rdb *redis.Client
	if cfg.Booking.NightLockEnabled {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis, night locks fall back to in-process: %v", err)
			rdb = nil
		}
	}

	// In-process event channel, fanned out together with NATS
	eventBus := events.NewChannelBus()
	var publisher events.Publisher = eventBus
	if natsPub != nil {
		publisher = events.Multi{natsPub, eventBus}
	}

	// 3. Domain components
	rateConverter := currency.NewConverter(currency.Config{
		ProviderURL:    cfg.Currency.ProviderURL,
		StaticOverride: cfg.Currency.StaticRate,
		Fallback:       cfg.Currency.FallbackRate,
	}, sysLogger)

	gateway := payment.NewMidtransGateway(cfg.Midtrans.ServerKey, cfg.Midtrans.IsProduction)
	reconciler := payment.NewReconciler(gateway, rateConverter, sysLogger, payment.Config{
		SettlementCurrency: cfg.Currency.Settlement,
		AmountTolerance:    cfg.Booking.AmountTolerance,
	})

	ledger := capacity.NewLedger(sysLogger)

	var nightLock *locks.NightLock
	if cfg.Booking.NightLockEnabled {
		nightLock = locks.NewNightLock(rdb)
	}

	// 4. Services
	bookingService := service.NewBookingService(
		uowFactory,
		ledger,
		reconciler,
		nightLock,
		publisher,
		sysLogger,
	)
	hotelService := service.NewHotelService(uowFactory, bookingService, publisher, sysLogger)
	notificationService := service.NewNotificationService(emailService, sysLogger)

	// 5. Controllers
	return &Container{
		BookingController:   controller.NewBookingController(bookingService),
		HotelController:     controller.NewHotelController(hotelService, bookingService),
		AdminController:     controller.NewAdminController(hotelService, bookingService, sysLogger),
		NotificationService: notificationService,
		EventBus:            eventBus,
		Logger:              sysLogger,
	}
}
