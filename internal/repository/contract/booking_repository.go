package contract

import (
	"context"

	"hotel-booking-be/internal/entity"
	"hotel-booking-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// Update writes the whole booking document in a single statement so a
	// reader never sees a refund log entry without its matching status.
	Update(ctx context.Context, booking *entity.Booking) error
	// HardDelete removes the row permanently, bypassing the lifecycle.
	HardDelete(ctx context.Context, id uuid.UUID) error
}
