package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForHotel filters bookings belonging to one hotel.
type ForHotel struct {
	HotelID uuid.UUID
}

func (s ForHotel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("hotel_id = ?", s.HotelID)
}

// OwnedBy filters bookings of one user.
type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// WithStatus filters on lifecycle status.
type WithStatus struct {
	Status string
}

func (s WithStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ActiveOnly keeps bookings that still occupy inventory.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", []string{"pending", "confirmed"})
}

// OccupiesNight matches stays covering the given night, half-open:
// check_in <= night < check_out. The check-out day is not occupied.
type OccupiesNight struct {
	Night time.Time
}

func (s OccupiesNight) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("check_in <= ? AND check_out > ?", s.Night, s.Night)
}

// OverlapsStay matches stays intersecting [From, To), half-open on both ends.
type OverlapsStay struct {
	From time.Time
	To   time.Time
}

func (s OverlapsStay) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("check_in < ? AND check_out > ?", s.To, s.From)
}
