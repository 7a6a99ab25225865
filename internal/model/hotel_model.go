package model

import (
	"time"

	"github.com/google/uuid"
)

type Hotel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(255);not null"`
	City          string    `gorm:"type:varchar(255)"`
	Country       string    `gorm:"type:varchar(255)"`
	NightlyPrice  float64   `gorm:"type:decimal(12,2);not null"`
	Currency      string    `gorm:"type:varchar(8);not null;default:'USD'"`
	DailyCapacity int       `gorm:"default:0"` // 0 = unlimited
	Status        string    `gorm:"type:varchar(32);default:'pending';index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Hotel) TableName() string {
	return "hotels"
}
