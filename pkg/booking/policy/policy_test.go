package policy

import (
	"testing"
	"time"

	"hotel-booking-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testBooking(checkInFrom time.Duration, initial float64) *entity.Booking {
	now := time.Now().UTC()
	return &entity.Booking{
		Id:             uuid.New(),
		UserID:         uuid.New(),
		CheckIn:        now.Add(checkInFrom),
		InitialPayment: initial,
		Status:         entity.BookingStatusConfirmed,
	}
}

func TestComputeRefund_UserOutsideWindow(t *testing.T) {
	b := testBooking(25*time.Hour, 500)
	amount := ComputeRefund(b, entity.RoleUser, time.Now().UTC())
	assert.Equal(t, 500.0, amount)
}

func TestComputeRefund_UserInsideWindow(t *testing.T) {
	b := testBooking(23*time.Hour, 500)
	amount := ComputeRefund(b, entity.RoleUser, time.Now().UTC())
	assert.Equal(t, 0.0, amount)
}

func TestComputeRefund_UserExactlyAtBoundary(t *testing.T) {
	now := time.Now().UTC()
	b := testBooking(0, 500)
	b.CheckIn = now.Add(24 * time.Hour)

	// Exactly 24h is not "more than" the window: no refund.
	amount := ComputeRefund(b, entity.RoleUser, now)
	assert.Equal(t, 0.0, amount)
}

func TestComputeRefund_AdminAlwaysFull(t *testing.T) {
	b := testBooking(1*time.Hour, 500)
	amount := ComputeRefund(b, entity.RoleAdmin, time.Now().UTC())
	assert.Equal(t, 500.0, amount)
}

func TestRefundStatusFor(t *testing.T) {
	assert.Equal(t, entity.RefundStatusPending, RefundStatusFor(100))
	assert.Equal(t, entity.RefundStatusNone, RefundStatusFor(0))
}

func TestReasonFor(t *testing.T) {
	owner := uuid.New()
	adminId := uuid.New()

	selfActor := entity.Principal{UserID: owner, Role: entity.RoleUser}
	adminActor := entity.Principal{UserID: adminId, Role: entity.RoleAdmin}

	assert.Equal(t, entity.ReasonSelfCancel, ReasonFor(selfActor, owner, false))
	assert.Equal(t, entity.ReasonAdminCancel, ReasonFor(adminActor, owner, false))
	assert.Equal(t, entity.ReasonPolicyCancel, ReasonFor(adminActor, owner, true))

	// An admin cancelling their own booking is still an admin cancel.
	adminOwn := entity.Principal{UserID: owner, Role: entity.RoleAdmin}
	assert.Equal(t, entity.ReasonAdminCancel, ReasonFor(adminOwn, owner, false))
}
