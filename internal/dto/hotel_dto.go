package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateHotelRequest struct {
	Name          string  `json:"name" validate:"required"`
	City          string  `json:"city" validate:"required"`
	Country       string  `json:"country" validate:"required"`
	NightlyPrice  float64 `json:"nightly_price" validate:"required,gt=0"`
	Currency      string  `json:"currency" validate:"required,len=3"`
	DailyCapacity int     `json:"daily_capacity" validate:"omitempty,min=0"`
}

type HotelResponse struct {
	Id            uuid.UUID `json:"id"`
	OwnerId       uuid.UUID `json:"owner_id"`
	Name          string    `json:"name"`
	City          string    `json:"city"`
	Country       string    `json:"country"`
	NightlyPrice  float64   `json:"nightly_price"`
	Currency      string    `json:"currency"`
	DailyCapacity int       `json:"daily_capacity"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// SetHotelStatusRequest moves a listing between approval states. Leaving
// "approved" cancels every active booking on the hotel.
type SetHotelStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

type SetHotelStatusResponse struct {
	Hotel   HotelResponse  `json:"hotel"`
	Cascade *CascadeResult `json:"cascade,omitempty"`
}
