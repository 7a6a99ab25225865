package contract

import (
	"context"

	"hotel-booking-be/internal/entity"
	"hotel-booking-be/internal/repository/specification"
)

type HotelRepository interface {
	Create(ctx context.Context, hotel *entity.Hotel) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Hotel, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Hotel, error)
	Update(ctx context.Context, hotel *entity.Hotel) error
}
