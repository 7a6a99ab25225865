// Package capacity answers whether a hotel still has a free room-night for
// every night of a requested stay.
package capacity

import (
	"context"
	"time"

	"hotel-booking-be/internal/apperr"
	"hotel-booking-be/internal/entity"
	"hotel-booking-be/internal/pkg/logger"
	"hotel-booking-be/internal/repository/specification"
	"hotel-booking-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type Ledger struct {
	logger logger.ILogger
}

func NewLedger(logger logger.ILogger) *Ledger {
	return &Ledger{logger: logger}
}

// CheckAdmission verifies that admitting a stay over [checkIn, checkOut)
// keeps every night at or under the hotel's daily capacity. capacity <= 0
// means unlimited inventory and always admits.
//
// The count is taken against the store at call time; this is a best-effort
// check, not a reservation. Two concurrent requests can both pass and
// overshoot capacity by a small margin unless the caller serializes per
// hotel-night (see pkg/locks).
//
// A store failure degrades to admit: inventory exactness is secondary to
// taking the booking.
func (l *Ledger) CheckAdmission(ctx context.Context, uow unitofwork.UnitOfWork, hotelID uuid.UUID, checkIn, checkOut time.Time, capacity int) error {
	if capacity <= 0 {
		return nil
	}

	for night := checkIn; night.Before(checkOut); night = night.AddDate(0, 0, 1) {
		count, err := uow.BookingRepository().Count(ctx,
			specification.ForHotel{HotelID: hotelID},
			specification.WithStatus{Status: string(entity.BookingStatusConfirmed)},
			specification.OccupiesNight{Night: night},
		)
		if err != nil {
			l.logger.Warn("CAPACITY", "Admission check failed, admitting without verification", map[string]interface{}{
				"hotelId": hotelID.String(),
				"night":   night.Format("2006-01-02"),
				"error":   err.Error(),
			})
			return nil
		}
		if count >= int64(capacity) {
			return apperr.New(apperr.KindCapacityExceeded, "no rooms left for the requested night").
				WithMeta("date", night.Format("2006-01-02"))
		}
	}
	return nil
}
