package entity

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleHotelOwner Role = "hotelOwner"
	RoleAdmin      Role = "admin"
)

// Principal is the pre-validated {userId, role} pair supplied by the auth
// layer. Services never consult anything else about the caller.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type User struct {
	Id        uuid.UUID
	Email     string
	FullName  string
	Role      Role
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
