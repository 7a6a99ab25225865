package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReferenceCode string    `gorm:"type:varchar(64);uniqueIndex"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	HotelID       uuid.UUID `gorm:"type:uuid;not null;index"`

	CheckIn  time.Time `gorm:"not null;index"`
	CheckOut time.Time `gorm:"not null;index"`
	Nights   int       `gorm:"not null"`

	Currency       string  `gorm:"type:varchar(8);not null"`
	TotalPrice     float64 `gorm:"type:decimal(12,2);not null"`
	InitialPayment float64 `gorm:"type:decimal(12,2);not null"`
	RefundAmount   float64 `gorm:"type:decimal(12,2);default:0"`

	Status string `gorm:"type:varchar(32);default:'pending';index"`

	CancelledAt        *time.Time
	CancelledBy        *uuid.UUID `gorm:"type:uuid"`
	CancellationReason string     `gorm:"type:varchar(32)"`

	RefundStatus string `gorm:"type:varchar(32);default:'none'"`
	RefundedAt   *time.Time
	RefundedBy   *uuid.UUID     `gorm:"type:uuid"`
	RefundLog    datatypes.JSON `gorm:"type:jsonb"`

	PaymentOrderID       string `gorm:"type:varchar(128)"`
	PaymentTransactionID string `gorm:"type:varchar(128)"`
	PaymentType          string `gorm:"type:varchar(64)"`

	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	OfflineCash bool      `gorm:"default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	// Relations
	User  User  `gorm:"foreignKey:UserID"`
	Hotel Hotel `gorm:"foreignKey:HotelID"`
}

func (Booking) TableName() string {
	return "bookings"
}
