// Package lifecycle owns the booking state machine: which status moves are
// representable and who may trigger them at a given time.
package lifecycle

import (
	"time"

	"hotel-booking-be/internal/apperr"
	"hotel-booking-be/internal/entity"
)

// OwnerCancelWindow is how long before check-in a regular user may still
// cancel their own booking.
const OwnerCancelWindow = 24 * time.Hour

// IsTerminal reports whether no further transition may leave the status.
func IsTerminal(s entity.BookingStatus) bool {
	return s == entity.BookingStatusCancelled || s == entity.BookingStatusCompleted
}

// CanTransition reports whether from -> to is a representable move,
// independent of actor or time.
func CanTransition(from, to entity.BookingStatus) bool {
	switch from {
	case entity.BookingStatusPending, entity.BookingStatusConfirmed:
		return to == entity.BookingStatusCancelled || to == entity.BookingStatusCompleted
	default:
		return false
	}
}

// AuthorizeCancel decides whether the actor may move the booking into
// cancelled at this moment. Cancelled bookings are handled upstream as an
// idempotent no-op and never reach this check.
//
// Admins cancel unconditionally. The owning user may cancel only while more
// than OwnerCancelWindow remains before check-in. Anyone else is refused.
func AuthorizeCancel(b *entity.Booking, actor entity.Principal, now time.Time) error {
	if !CanTransition(b.Status, entity.BookingStatusCancelled) {
		return apperr.New(apperr.KindPolicyViolation, "booking can no longer be cancelled").
			WithMeta("status", string(b.Status))
	}

	if actor.IsAdmin() {
		return nil
	}

	if actor.UserID != b.UserID {
		return apperr.New(apperr.KindForbidden, "only the booking owner or an administrator may cancel")
	}

	if b.CheckIn.IsZero() {
		return apperr.New(apperr.KindMissingCheckIn, "booking has no check-in date")
	}

	if b.CheckIn.Sub(now) <= OwnerCancelWindow {
		return apperr.New(apperr.KindPolicyViolation, "cancellation window has closed").
			WithMeta("check_in", b.CheckIn)
	}
	return nil
}

// AuthorizeHardDelete gates the destructive path that bypasses the state
// machine entirely.
func AuthorizeHardDelete(actor entity.Principal) error {
	if !actor.IsAdmin() {
		return apperr.New(apperr.KindForbidden, "hard delete is restricted to administrators")
	}
	return nil
}
