package contract

import (
	"context"

	"hotel-booking-be/internal/entity"
	"hotel-booking-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
}
