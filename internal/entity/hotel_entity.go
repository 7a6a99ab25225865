package entity

import (
	"time"

	"github.com/google/uuid"
)

// HotelStatus is the listing approval status. Only approved hotels accept
// bookings; leaving "approved" cascades cancellation over active bookings.
type HotelStatus string

const (
	HotelStatusPending  HotelStatus = "pending"
	HotelStatusApproved HotelStatus = "approved"
	HotelStatusRejected HotelStatus = "rejected"
)

type Hotel struct {
	Id            uuid.UUID
	OwnerID       uuid.UUID
	Name          string
	City          string
	Country       string
	NightlyPrice  float64
	Currency      string
	DailyCapacity int // 0 = unlimited
	Status        HotelStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
