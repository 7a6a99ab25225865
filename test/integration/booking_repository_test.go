package integration

import (
	"context"
	"testing"
	"time"

	"hotel-booking-be/internal/entity"
	"hotel-booking-be/internal/model"
	"hotel-booking-be/internal/repository/specification"
	"hotel-booking-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Hotel{}, &model.Booking{}))
	return db
}

func night(d int) time.Time {
	return time.Date(2025, time.June, d, entity.CheckInHourUTC, 0, 0, 0, time.UTC)
}

func seedBooking(t *testing.T, uow unitofwork.UnitOfWork, hotelID uuid.UUID, from, to int, status entity.BookingStatus) *entity.Booking {
	t.Helper()

	b := &entity.Booking{
		Id:             uuid.New(),
		ReferenceCode:  uuid.NewString()[:8],
		UserID:         uuid.New(),
		HotelID:        hotelID,
		CheckIn:        night(from),
		CheckOut:       night(to),
		Nights:         to - from,
		Currency:       "USD",
		TotalPrice:     float64(to-from) * 100,
		InitialPayment: float64(to-from) * 50,
		Status:         status,
		RefundStatus:   entity.RefundStatusNone,
		CreatedBy:      uuid.New(),
	}
	require.NoError(t, uow.BookingRepository().Create(context.Background(), b))
	return b
}

func TestBookingRepository_RoundTrip(t *testing.T) {
	db := setupDB(t)
	uow := unitofwork.NewUnitOfWork(db)
	ctx := context.Background()

	hotelID := uuid.New()
	created := seedBooking(t, uow, hotelID, 10, 13, entity.BookingStatusConfirmed)

	found, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: created.Id})
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, created.ReferenceCode, found.ReferenceCode)
	assert.Equal(t, 3, found.Nights)
	assert.Equal(t, entity.BookingStatusConfirmed, found.Status)
	assert.True(t, created.CheckIn.Equal(found.CheckIn))
	assert.True(t, created.CheckOut.Equal(found.CheckOut))
	assert.Empty(t, found.RefundLog)
}

func TestBookingRepository_FindOneMissingReturnsNil(t *testing.T) {
	db := setupDB(t)
	uow := unitofwork.NewUnitOfWork(db)

	found, err := uow.BookingRepository().FindOne(context.Background(), specification.ByID{ID: uuid.New()})
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestBookingRepository_CountOccupiedNights(t *testing.T) {
	db := setupDB(t)
	uow := unitofwork.NewUnitOfWork(db)
	ctx := context.Background()

	hotelID := uuid.New()
	seedBooking(t, uow, hotelID, 10, 13, entity.BookingStatusConfirmed)
	seedBooking(t, uow, hotelID, 12, 14, entity.BookingStatusConfirmed)
	seedBooking(t, uow, hotelID, 10, 13, entity.BookingStatusCancelled)
	seedBooking(t, uow, uuid.New(), 10, 13, entity.BookingStatusConfirmed) // other hotel

	countFor := func(d int) int64 {
		count, err := uow.BookingRepository().Count(ctx,
			specification.ForHotel{HotelID: hotelID},
			specification.WithStatus{Status: string(entity.BookingStatusConfirmed)},
			specification.OccupiesNight{Night: night(d)},
		)
		require.NoError(t, err)
		return count
	}

	assert.Equal(t, int64(1), countFor(10))
	assert.Equal(t, int64(2), countFor(12)) // both stays cover the 12th
	assert.Equal(t, int64(1), countFor(13)) // first stay checked out
	assert.Equal(t, int64(0), countFor(14)) // check-out day is free
}

func TestBookingRepository_UpdateWritesCancellationAndRefundLogTogether(t *testing.T) {
	db := setupDB(t)
	uow := unitofwork.NewUnitOfWork(db)
	ctx := context.Background()

	hotelID := uuid.New()
	b := seedBooking(t, uow, hotelID, 10, 12, entity.BookingStatusConfirmed)

	now := time.Now().UTC().Truncate(time.Second)
	actor := uuid.New()

	b.Status = entity.BookingStatusCancelled
	b.CancelledAt = &now
	b.CancelledBy = &actor
	b.CancellationReason = entity.ReasonSelfCancel
	b.RefundAmount = 100
	b.RefundStatus = entity.RefundStatusIssued
	b.RefundedAt = &now
	b.RefundedBy = &actor
	b.RefundLog = []entity.RefundAttempt{
		{Actor: actor, At: now, Channel: entity.RefundChannelManual, Succeeded: true},
	}
	b.Payment = entity.PaymentLink{OrderID: "order-1", TransactionID: "txn-1", PaymentType: "credit_card"}

	require.NoError(t, uow.BookingRepository().Update(ctx, b))

	found, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: b.Id})
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, entity.BookingStatusCancelled, found.Status)
	assert.Equal(t, entity.ReasonSelfCancel, found.CancellationReason)
	assert.Equal(t, entity.RefundStatusIssued, found.RefundStatus)
	assert.Equal(t, 100.0, found.RefundAmount)
	require.Len(t, found.RefundLog, 1)
	assert.Equal(t, entity.RefundChannelManual, found.RefundLog[0].Channel)
	assert.True(t, found.RefundLog[0].Succeeded)
	assert.Equal(t, "txn-1", found.Payment.TransactionID)
}

func TestBookingRepository_HardDelete(t *testing.T) {
	db := setupDB(t)
	uow := unitofwork.NewUnitOfWork(db)
	ctx := context.Background()

	b := seedBooking(t, uow, uuid.New(), 10, 12, entity.BookingStatusCancelled)

	require.NoError(t, uow.BookingRepository().HardDelete(ctx, b.Id))

	found, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: b.Id})
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestUnitOfWork_TransactionRollback(t *testing.T) {
	db := setupDB(t)
	uow := unitofwork.NewUnitOfWork(db)
	ctx := context.Background()

	require.NoError(t, uow.Begin(ctx))
	seedBooking(t, uow, uuid.New(), 10, 12, entity.BookingStatusConfirmed)
	require.NoError(t, uow.Rollback())

	count, err := unitofwork.NewUnitOfWork(db).BookingRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestHotelRepository_StatusFilter(t *testing.T) {
	db := setupDB(t)
	uow := unitofwork.NewUnitOfWork(db)
	ctx := context.Background()

	approved := &entity.Hotel{
		Id: uuid.New(), OwnerID: uuid.New(), Name: "A", NightlyPrice: 100,
		Currency: "USD", Status: entity.HotelStatusApproved,
	}
	pending := &entity.Hotel{
		Id: uuid.New(), OwnerID: uuid.New(), Name: "B", NightlyPrice: 100,
		Currency: "USD", Status: entity.HotelStatusPending,
	}
	require.NoError(t, uow.HotelRepository().Create(ctx, approved))
	require.NoError(t, uow.HotelRepository().Create(ctx, pending))

	hotels, err := uow.HotelRepository().FindAll(ctx,
		specification.Filter("status", string(entity.HotelStatusApproved)),
	)
	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, "A", hotels[0].Name)
}
