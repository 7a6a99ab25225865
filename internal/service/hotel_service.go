package service

import (
	"context"
	"time"

	"hotel-booking-be/internal/apperr"
	"hotel-booking-be/internal/dto"
	"hotel-booking-be/internal/entity"
	"hotel-booking-be/internal/mapper"
	"hotel-booking-be/internal/pkg/logger"
	"hotel-booking-be/internal/repository/specification"
	"hotel-booking-be/internal/repository/unitofwork"
	"hotel-booking-be/pkg/events"

	"github.com/google/uuid"
)

type IHotelService interface {
	Create(ctx context.Context, actor entity.Principal, req *dto.CreateHotelRequest) (*dto.HotelResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.HotelResponse, error)
	ListApproved(ctx context.Context) ([]*dto.HotelResponse, error)
	MyHotels(ctx context.Context, actor entity.Principal) ([]*dto.HotelResponse, error)
	SetStatus(ctx context.Context, actor entity.Principal, id uuid.UUID, req *dto.SetHotelStatusRequest) (*dto.SetHotelStatusResponse, error)
}

type hotelService struct {
	uowFactory     unitofwork.RepositoryFactory
	bookingService IBookingService
	eventPublisher events.Publisher
	mapper         *mapper.HotelMapper
	logger         logger.ILogger
}

func NewHotelService(
	uowFactory unitofwork.RepositoryFactory,
	bookingService IBookingService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IHotelService {
	return &hotelService{
		uowFactory:     uowFactory,
		bookingService: bookingService,
		eventPublisher: eventPublisher,
		mapper:         mapper.NewHotelMapper(),
		logger:         log,
	}
}

func (c *hotelService) Create(ctx context.Context, actor entity.Principal, req *dto.CreateHotelRequest) (*dto.HotelResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	hotel := entity.Hotel{
		Id:            uuid.New(),
		OwnerID:       actor.UserID,
		Name:          req.Name,
		City:          req.City,
		Country:       req.Country,
		NightlyPrice:  req.NightlyPrice,
		Currency:      req.Currency,
		DailyCapacity: req.DailyCapacity,
		Status:        entity.HotelStatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := uow.HotelRepository().Create(ctx, &hotel); err != nil {
		return nil, err
	}

	c.logger.Info("HOTEL", "Hotel listing created", map[string]interface{}{
		"hotelId": hotel.Id.String(),
		"ownerId": hotel.OwnerID.String(),
	})
	return c.mapper.ToResponse(&hotel), nil
}

func (c *hotelService) Show(ctx context.Context, id uuid.UUID) (*dto.HotelResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	hotel, err := uow.HotelRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, apperr.New(apperr.KindNotFound, "hotel not found")
	}
	return c.mapper.ToResponse(hotel), nil
}

func (c *hotelService) ListApproved(ctx context.Context) ([]*dto.HotelResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	hotels, err := uow.HotelRepository().FindAll(ctx,
		specification.Filter("status", string(entity.HotelStatusApproved)),
		specification.OrderBy{Field: "name", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	return c.mapper.ToResponseList(hotels), nil
}

func (c *hotelService) MyHotels(ctx context.Context, actor entity.Principal) ([]*dto.HotelResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	hotels, err := uow.HotelRepository().FindAll(ctx,
		specification.Filter("owner_id", actor.UserID),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return c.mapper.ToResponseList(hotels), nil
}

// SetStatus moves a listing between approval states. Demoting an approved
// hotel cancels its active bookings under the admin refund rule; the cascade
// outcome rides along in the response.
func (c *hotelService) SetStatus(ctx context.Context, actor entity.Principal, id uuid.UUID, req *dto.SetHotelStatusRequest) (*dto.SetHotelStatusResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.KindForbidden, "hotel approval is restricted to administrators")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	hotel, err := uow.HotelRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, apperr.New(apperr.KindNotFound, "hotel not found")
	}

	newStatus := entity.HotelStatus(req.Status)
	wasApproved := hotel.Status == entity.HotelStatusApproved

	hotel.Status = newStatus
	if err := uow.HotelRepository().Update(ctx, hotel); err != nil {
		return nil, err
	}

	res := &dto.SetHotelStatusResponse{Hotel: *c.mapper.ToResponse(hotel)}

	if wasApproved && newStatus != entity.HotelStatusApproved {
		cascade, err := c.bookingService.CascadeCancelForHotel(ctx, actor, hotel.Id)
		if err != nil {
			// Status change already persisted; report the sweep failure only.
			c.logger.Error("HOTEL", "Cascade cancellation sweep failed", map[string]interface{}{
				"hotelId": hotel.Id.String(),
				"error":   err.Error(),
			})
		} else {
			res.Cascade = cascade
		}
	}

	c.logger.Info("HOTEL", "Hotel status set", map[string]interface{}{
		"hotelId": hotel.Id.String(),
		"status":  string(hotel.Status),
	})

	if c.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeHotelStatusSet,
			Data: map[string]interface{}{
				"hotel_id": hotel.Id.String(),
				"status":   string(hotel.Status),
			},
			OccurredAt: time.Now(),
		}
		if err := c.eventPublisher.Publish(ctx, event); err != nil {
			c.logger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
				"type":  events.TypeHotelStatusSet,
				"error": err.Error(),
			})
		}
	}

	return res, nil
}
