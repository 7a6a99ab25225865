package unitofwork

import (
	"context"

	"hotel-booking-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	BookingRepository() contract.BookingRepository
	HotelRepository() contract.HotelRepository
	UserRepository() contract.UserRepository
}
