package lifecycle

import (
	"testing"
	"time"

	"hotel-booking-be/internal/apperr"
	"hotel-booking-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(entity.BookingStatusPending, entity.BookingStatusCancelled))
	assert.True(t, CanTransition(entity.BookingStatusConfirmed, entity.BookingStatusCancelled))
	assert.True(t, CanTransition(entity.BookingStatusConfirmed, entity.BookingStatusCompleted))

	assert.False(t, CanTransition(entity.BookingStatusCancelled, entity.BookingStatusConfirmed))
	assert.False(t, CanTransition(entity.BookingStatusCompleted, entity.BookingStatusCancelled))
	assert.False(t, CanTransition(entity.BookingStatusPending, entity.BookingStatusPending))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(entity.BookingStatusCancelled))
	assert.True(t, IsTerminal(entity.BookingStatusCompleted))
	assert.False(t, IsTerminal(entity.BookingStatusPending))
	assert.False(t, IsTerminal(entity.BookingStatusConfirmed))
}

func TestAuthorizeCancel_AdminAnytime(t *testing.T) {
	now := time.Now().UTC()
	b := &entity.Booking{
		UserID:  uuid.New(),
		Status:  entity.BookingStatusConfirmed,
		CheckIn: now.Add(1 * time.Hour), // already inside the owner window
	}
	admin := entity.Principal{UserID: uuid.New(), Role: entity.RoleAdmin}

	assert.NoError(t, AuthorizeCancel(b, admin, now))
}

func TestAuthorizeCancel_OwnerOutsideWindow(t *testing.T) {
	now := time.Now().UTC()
	owner := uuid.New()
	b := &entity.Booking{
		UserID:  owner,
		Status:  entity.BookingStatusConfirmed,
		CheckIn: now.Add(48 * time.Hour),
	}
	actor := entity.Principal{UserID: owner, Role: entity.RoleUser}

	assert.NoError(t, AuthorizeCancel(b, actor, now))
}

func TestAuthorizeCancel_OwnerInsideWindow(t *testing.T) {
	now := time.Now().UTC()
	owner := uuid.New()
	b := &entity.Booking{
		UserID:  owner,
		Status:  entity.BookingStatusConfirmed,
		CheckIn: now.Add(12 * time.Hour),
	}
	actor := entity.Principal{UserID: owner, Role: entity.RoleUser}

	err := AuthorizeCancel(b, actor, now)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindPolicyViolation, apperr.KindOf(err))
}

func TestAuthorizeCancel_StrangerForbidden(t *testing.T) {
	now := time.Now().UTC()
	b := &entity.Booking{
		UserID:  uuid.New(),
		Status:  entity.BookingStatusConfirmed,
		CheckIn: now.Add(48 * time.Hour),
	}
	actor := entity.Principal{UserID: uuid.New(), Role: entity.RoleUser}

	err := AuthorizeCancel(b, actor, now)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestAuthorizeCancel_MissingCheckIn(t *testing.T) {
	now := time.Now().UTC()
	owner := uuid.New()
	b := &entity.Booking{
		UserID: owner,
		Status: entity.BookingStatusConfirmed,
	}
	actor := entity.Principal{UserID: owner, Role: entity.RoleUser}

	err := AuthorizeCancel(b, actor, now)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindMissingCheckIn, apperr.KindOf(err))
}

func TestAuthorizeCancel_CompletedRefused(t *testing.T) {
	now := time.Now().UTC()
	b := &entity.Booking{
		UserID: uuid.New(),
		Status: entity.BookingStatusCompleted,
	}
	admin := entity.Principal{UserID: uuid.New(), Role: entity.RoleAdmin}

	err := AuthorizeCancel(b, admin, now)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindPolicyViolation, apperr.KindOf(err))
}

func TestAuthorizeHardDelete(t *testing.T) {
	assert.NoError(t, AuthorizeHardDelete(entity.Principal{Role: entity.RoleAdmin}))

	err := AuthorizeHardDelete(entity.Principal{Role: entity.RoleUser})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}
