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
	"hotel-booking-be/pkg/booking/capacity"
	"hotel-booking-be/pkg/booking/lifecycle"
	"hotel-booking-be/pkg/booking/policy"
	"hotel-booking-be/pkg/events"
	"hotel-booking-be/pkg/locks"
	"hotel-booking-be/pkg/payment"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"
)

const dateLayout = "2006-01-02"

type IBookingService interface {
	Create(ctx context.Context, actor entity.Principal, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	Show(ctx context.Context, actor entity.Principal, id uuid.UUID) (*dto.BookingResponse, error)
	MyBookings(ctx context.Context, actor entity.Principal) ([]*dto.BookingResponse, error)
	HotelBookings(ctx context.Context, actor entity.Principal, hotelID uuid.UUID) ([]*dto.BookingResponse, error)
	Cancel(ctx context.Context, actor entity.Principal, id uuid.UUID) (*dto.BookingResponse, error)
	CascadeCancelForHotel(ctx context.Context, actor entity.Principal, hotelID uuid.UUID) (*dto.CascadeResult, error)
	IssueRefund(ctx context.Context, actor entity.Principal, id uuid.UUID) (*dto.BookingResponse, error)
	HardDelete(ctx context.Context, actor entity.Principal, id uuid.UUID) error
}

type bookingService struct {
	uowFactory     unitofwork.RepositoryFactory
	ledger         *capacity.Ledger
	reconciler     *payment.Reconciler
	nightLock      *locks.NightLock
	eventPublisher events.Publisher
	mapper         *mapper.BookingMapper
	logger         logger.ILogger
}

func NewBookingService(
	uowFactory unitofwork.RepositoryFactory,
	ledger *capacity.Ledger,
	reconciler *payment.Reconciler,
	nightLock *locks.NightLock,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IBookingService {
	return &bookingService{
		uowFactory:     uowFactory,
		ledger:         ledger,
		reconciler:     reconciler,
		nightLock:      nightLock,
		eventPublisher: eventPublisher,
		mapper:         mapper.NewBookingMapper(),
		logger:         log,
	}
}

func (c *bookingService) Create(ctx context.Context, actor entity.Principal, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	checkIn, err := time.Parse(dateLayout, req.CheckInDate)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "check_in_date must be formatted as YYYY-MM-DD")
	}

	var checkOut *time.Time
	if req.CheckOutDate != "" {
		co, err := time.Parse(dateLayout, req.CheckOutDate)
		if err != nil {
			return nil, apperr.New(apperr.KindValidation, "check_out_date must be formatted as YYYY-MM-DD")
		}
		checkOut = &co
	}

	ci, co, nights, err := entity.NormalizeStay(checkIn, checkOut, req.Days)
	if err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	hotel, err := uow.HotelRepository().FindOne(ctx, specification.ByID{ID: req.HotelId})
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, apperr.New(apperr.KindNotFound, "hotel not found")
	}
	if hotel.Status != entity.HotelStatusApproved {
		return nil, apperr.New(apperr.KindPolicyViolation, "hotel is not accepting bookings").
			WithMeta("hotel_status", string(hotel.Status))
	}

	guestID := actor.UserID
	if req.UserId != nil && actor.IsAdmin() {
		guestID = *req.UserId
	}

	totalPrice := hotel.NightlyPrice * float64(nights)
	initialPayment := entity.DefaultInitialPayment(totalPrice)
	if req.InitialPayment > 0 {
		if req.InitialPayment > totalPrice {
			return nil, apperr.New(apperr.KindValidation, "initial payment cannot exceed the total price")
		}
		initialPayment = req.InitialPayment
	}

	if c.nightLock != nil {
		release, err := c.nightLock.Acquire(ctx, hotel.Id, ci, co)
		if err != nil {
			// Lock trouble must not block intake; the admission check below
			// still runs, just without the serialization guarantee.
			c.logger.Warn("BOOKING", "Night lock unavailable, admitting without serialization", map[string]interface{}{
				"hotelId": hotel.Id.String(),
				"error":   err.Error(),
			})
		} else {
			defer release()
		}
	}

	if err := c.ledger.CheckAdmission(ctx, uow, hotel.Id, ci, co, hotel.DailyCapacity); err != nil {
		return nil, err
	}

	var link entity.PaymentLink
	switch {
	case req.PaymentOrderId != "":
		tx, err := c.reconciler.VerifyPayment(ctx, req.PaymentOrderId, initialPayment, hotel.Currency)
		if err != nil {
			return nil, err
		}
		link = entity.PaymentLink{
			OrderID:       tx.OrderID,
			TransactionID: tx.TransactionID,
			PaymentType:   tx.PaymentType,
		}
	case req.OfflineCash:
		// Nothing to verify. The booking carries no gateway identifiers and
		// any refund will be bookkept through the manual channel.
	default:
		return nil, apperr.New(apperr.KindValidation, "either a payment order id or the offline cash flag is required")
	}

	now := time.Now().UTC()
	booking := entity.Booking{
		Id:             uuid.New(),
		ReferenceCode:  shortuuid.New(),
		UserID:         guestID,
		HotelID:        hotel.Id,
		CheckIn:        ci,
		CheckOut:       co,
		Nights:         nights,
		Currency:       hotel.Currency,
		TotalPrice:     totalPrice,
		InitialPayment: initialPayment,
		Status:         entity.BookingStatusConfirmed,
		RefundStatus:   entity.RefundStatusNone,
		Payment:        link,
		CreatedBy:      actor.UserID,
		OfflineCash:    req.OfflineCash,
		CreatedAt:      now,
	}

	if err := uow.BookingRepository().Create(ctx, &booking); err != nil {
		return nil, err
	}

	c.logger.Info("BOOKING", "Booking created", map[string]interface{}{
		"bookingId": booking.Id.String(),
		"hotelId":   hotel.Id.String(),
		"nights":    nights,
	})

	c.publish(ctx, uow, events.TypeBookingCreated, &booking, map[string]interface{}{
		"hotel_name": hotel.Name,
	})

	return c.mapper.ToResponse(&booking), nil
}

func (c *bookingService) Show(ctx context.Context, actor entity.Principal, id uuid.UUID) (*dto.BookingResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	booking, err := c.load(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	if err := c.authorizeView(ctx, uow, booking, actor); err != nil {
		return nil, err
	}
	return c.mapper.ToResponse(booking), nil
}

func (c *bookingService) MyBookings(ctx context.Context, actor entity.Principal) ([]*dto.BookingResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	bookings, err := uow.BookingRepository().FindAll(ctx,
		specification.OwnedBy{UserID: actor.UserID},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return c.mapper.ToResponseList(bookings), nil
}

func (c *bookingService) HotelBookings(ctx context.Context, actor entity.Principal, hotelID uuid.UUID) ([]*dto.BookingResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	hotel, err := uow.HotelRepository().FindOne(ctx, specification.ByID{ID: hotelID})
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, apperr.New(apperr.KindNotFound, "hotel not found")
	}
	if !actor.IsAdmin() && actor.UserID != hotel.OwnerID {
		return nil, apperr.New(apperr.KindForbidden, "only the hotel owner or an administrator may list hotel bookings")
	}

	bookings, err := uow.BookingRepository().FindAll(ctx,
		specification.ForHotel{HotelID: hotelID},
		specification.OrderBy{Field: "check_in", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	return c.mapper.ToResponseList(bookings), nil
}

// Cancel moves the booking to cancelled, computes the refund entitlement and
// settles it best-effort. Re-cancelling an already cancelled booking is a
// no-op returning the current state.
func (c *bookingService) Cancel(ctx context.Context, actor entity.Principal, id uuid.UUID) (*dto.BookingResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	booking, err := c.load(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if booking.Status == entity.BookingStatusCancelled {
		return c.mapper.ToResponse(booking), nil
	}

	booking, err = c.cancelOne(ctx, uow, booking, actor, false)
	if err != nil {
		return nil, err
	}
	return c.mapper.ToResponse(booking), nil
}

// cancelOne performs the actual transition. The status, audit fields and
// refund entitlement land in one repository write; the gateway refund runs
// after and never unwinds the cancellation.
func (c *bookingService) cancelOne(ctx context.Context, uow unitofwork.UnitOfWork, booking *entity.Booking, actor entity.Principal, cascade bool) (*entity.Booking, error) {
	now := time.Now().UTC()

	if err := lifecycle.AuthorizeCancel(booking, actor, now); err != nil {
		return nil, err
	}

	refund := policy.ComputeRefund(booking, actor.Role, now)

	actorID := actor.UserID
	booking.Status = entity.BookingStatusCancelled
	booking.CancelledAt = &now
	booking.CancelledBy = &actorID
	booking.CancellationReason = policy.ReasonFor(actor, booking.UserID, cascade)
	booking.RefundAmount = refund
	booking.RefundStatus = policy.RefundStatusFor(refund)

	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, err
	}

	if refund > 0 {
		if _, err := c.reconciler.IssueRefund(ctx, uow, booking, actor); err != nil {
			// The cancellation stands; the refund stays pending for retry.
			c.logger.Warn("BOOKING", "Refund not settled during cancellation", map[string]interface{}{
				"bookingId": booking.Id.String(),
				"error":     err.Error(),
			})
		}
	}

	c.logger.Info("BOOKING", "Booking cancelled", map[string]interface{}{
		"bookingId": booking.Id.String(),
		"reason":    string(booking.CancellationReason),
		"refund":    refund,
	})

	c.publish(ctx, uow, events.TypeBookingCancelled, booking, nil)

	return booking, nil
}

// CascadeCancelForHotel cancels every active booking on the hotel. Each
// booking is attempted independently; one failure never aborts the sweep.
func (c *bookingService) CascadeCancelForHotel(ctx context.Context, actor entity.Principal, hotelID uuid.UUID) (*dto.CascadeResult, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	bookings, err := uow.BookingRepository().FindAll(ctx,
		specification.ForHotel{HotelID: hotelID},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}

	result := &dto.CascadeResult{
		HotelId:   hotelID,
		Attempted: len(bookings),
	}

	for _, b := range bookings {
		item := dto.CascadeItem{BookingId: b.Id}
		if _, err := c.cancelOne(ctx, uow, b, actor, true); err != nil {
			item.Error = err.Error()
			c.logger.Error("BOOKING", "Cascade cancellation failed for booking", map[string]interface{}{
				"bookingId": b.Id.String(),
				"hotelId":   hotelID.String(),
				"error":     err.Error(),
			})
		} else {
			item.Cancelled = true
			result.Cancelled++
		}
		result.Items = append(result.Items, item)
	}

	return result, nil
}

// IssueRefund retries settlement of a pending refund entitlement.
func (c *bookingService) IssueRefund(ctx context.Context, actor entity.Principal, id uuid.UUID) (*dto.BookingResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.KindForbidden, "issuing refunds is restricted to administrators")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	booking, err := c.load(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != entity.BookingStatusCancelled {
		return nil, apperr.New(apperr.KindPolicyViolation, "refunds apply to cancelled bookings only").
			WithMeta("status", string(booking.Status))
	}

	booking, err = c.reconciler.IssueRefund(ctx, uow, booking, actor)
	if err != nil {
		return nil, err
	}

	c.publish(ctx, uow, events.TypeRefundIssued, booking, nil)

	return c.mapper.ToResponse(booking), nil
}

func (c *bookingService) HardDelete(ctx context.Context, actor entity.Principal, id uuid.UUID) error {
	if err := lifecycle.AuthorizeHardDelete(actor); err != nil {
		return err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	booking, err := c.load(ctx, uow, id)
	if err != nil {
		return err
	}

	if err := uow.BookingRepository().HardDelete(ctx, booking.Id); err != nil {
		return err
	}

	c.logger.Warn("BOOKING", "Booking hard deleted", map[string]interface{}{
		"bookingId": booking.Id.String(),
		"actor":     actor.UserID.String(),
	})
	return nil
}

func (c *bookingService) load(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Booking, error) {
	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.New(apperr.KindNotFound, "booking not found")
	}
	return booking, nil
}

func (c *bookingService) authorizeView(ctx context.Context, uow unitofwork.UnitOfWork, b *entity.Booking, actor entity.Principal) error {
	if actor.IsAdmin() || actor.UserID == b.UserID {
		return nil
	}

	hotel, err := uow.HotelRepository().FindOne(ctx, specification.ByID{ID: b.HotelID})
	if err != nil {
		return err
	}
	if hotel != nil && hotel.OwnerID == actor.UserID {
		return nil
	}
	return apperr.New(apperr.KindForbidden, "not allowed to view this booking")
}

// publish emits a lifecycle event, enriching the payload with the guest's
// email when it can be resolved. Event failures are logged, never returned.
func (c *bookingService) publish(ctx context.Context, uow unitofwork.UnitOfWork, eventType string, b *entity.Booking, extra map[string]interface{}) {
	if c.eventPublisher == nil {
		return
	}

	payload := map[string]interface{}{
		"booking_id":     b.Id.String(),
		"reference_code": b.ReferenceCode,
		"user_id":        b.UserID.String(),
		"hotel_id":       b.HotelID.String(),
		"check_in":       b.CheckIn.Format(dateLayout),
		"check_out":      b.CheckOut.Format(dateLayout),
		"currency":       b.Currency,
		"refund_amount":  b.RefundAmount,
	}
	for k, v := range extra {
		payload[k] = v
	}

	if user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: b.UserID}); err == nil && user != nil {
		payload["email"] = user.Email
	}

	event := events.BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: time.Now(),
	}
	if err := c.eventPublisher.Publish(ctx, event); err != nil {
		c.logger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
