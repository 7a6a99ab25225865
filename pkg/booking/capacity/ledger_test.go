package capacity

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-booking-be/internal/apperr"
	"hotel-booking-be/internal/entity"
	"hotel-booking-be/internal/pkg/logger"
	"hotel-booking-be/internal/repository/contract"
	"hotel-booking-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeBookingRepo counts in-memory bookings by interpreting the concrete
// specification values instead of building SQL.
type fakeBookingRepo struct {
	bookings []*entity.Booking
	countErr error
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *entity.Booking) error { return nil }
func (f *fakeBookingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	return nil, nil
}
func (f *fakeBookingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	return nil, nil
}
func (f *fakeBookingRepo) Update(ctx context.Context, b *entity.Booking) error  { return nil }
func (f *fakeBookingRepo) HardDelete(ctx context.Context, id uuid.UUID) error   { return nil }

func (f *fakeBookingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}

	var count int64
	for _, b := range f.bookings {
		if matches(b, specs) {
			count++
		}
	}
	return count, nil
}

func matches(b *entity.Booking, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ForHotel:
			if b.HotelID != sp.HotelID {
				return false
			}
		case specification.WithStatus:
			if string(b.Status) != sp.Status {
				return false
			}
		case specification.OccupiesNight:
			if !b.Occupies(sp.Night) {
				return false
			}
		}
	}
	return true
}

type fakeUow struct {
	bookings *fakeBookingRepo
}

func (f *fakeUow) Begin(ctx context.Context) error { return nil }
func (f *fakeUow) Commit() error                   { return nil }
func (f *fakeUow) Rollback() error                 { return nil }
func (f *fakeUow) BookingRepository() contract.BookingRepository {
	return f.bookings
}
func (f *fakeUow) HotelRepository() contract.HotelRepository { return nil }
func (f *fakeUow) UserRepository() contract.UserRepository   { return nil }

func day(d int) time.Time {
	return time.Date(2025, time.March, d, entity.CheckInHourUTC, 0, 0, 0, time.UTC)
}

func confirmedStay(hotelID uuid.UUID, from, to int) *entity.Booking {
	return &entity.Booking{
		Id:       uuid.New(),
		HotelID:  hotelID,
		CheckIn:  day(from),
		CheckOut: day(to),
		Status:   entity.BookingStatusConfirmed,
	}
}

func TestCheckAdmission_UnlimitedCapacity(t *testing.T) {
	hotelID := uuid.New()
	uow := &fakeUow{bookings: &fakeBookingRepo{countErr: errors.New("must not be called")}}
	ledger := NewLedger(logger.NewNopLogger())

	err := ledger.CheckAdmission(context.Background(), uow, hotelID, day(10), day(13), 0)
	assert.NoError(t, err)
}

func TestCheckAdmission_FullNightRejected(t *testing.T) {
	hotelID := uuid.New()
	uow := &fakeUow{bookings: &fakeBookingRepo{
		bookings: []*entity.Booking{
			confirmedStay(hotelID, 10, 12),
			confirmedStay(hotelID, 11, 14),
		},
	}}
	ledger := NewLedger(logger.NewNopLogger())

	// Night of the 11th already holds both stays; capacity 2 is full.
	err := ledger.CheckAdmission(context.Background(), uow, hotelID, day(11), day(12), 2)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindCapacityExceeded, apperr.KindOf(err))

	var appErr *apperr.Error
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "2025-03-11", appErr.Meta["date"])
}

func TestCheckAdmission_CheckOutDayIsFree(t *testing.T) {
	hotelID := uuid.New()
	uow := &fakeUow{bookings: &fakeBookingRepo{
		bookings: []*entity.Booking{
			confirmedStay(hotelID, 10, 12),
			confirmedStay(hotelID, 10, 12),
		},
	}}
	ledger := NewLedger(logger.NewNopLogger())

	// Both stays check out on the 12th, so a stay starting then fits.
	err := ledger.CheckAdmission(context.Background(), uow, hotelID, day(12), day(14), 2)
	assert.NoError(t, err)
}

func TestCheckAdmission_CancelledDoNotCount(t *testing.T) {
	hotelID := uuid.New()
	cancelled := confirmedStay(hotelID, 10, 12)
	cancelled.Status = entity.BookingStatusCancelled

	uow := &fakeUow{bookings: &fakeBookingRepo{
		bookings: []*entity.Booking{
			confirmedStay(hotelID, 10, 12),
			cancelled,
		},
	}}
	ledger := NewLedger(logger.NewNopLogger())

	err := ledger.CheckAdmission(context.Background(), uow, hotelID, day(10), day(12), 2)
	assert.NoError(t, err)
}

func TestCheckAdmission_StoreErrorAdmits(t *testing.T) {
	hotelID := uuid.New()
	uow := &fakeUow{bookings: &fakeBookingRepo{countErr: errors.New("connection reset")}}
	ledger := NewLedger(logger.NewNopLogger())

	err := ledger.CheckAdmission(context.Background(), uow, hotelID, day(10), day(12), 1)
	assert.NoError(t, err)
}
