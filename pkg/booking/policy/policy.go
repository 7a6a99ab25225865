// Package policy computes refund entitlement for a cancellation. The result
// is persisted together with the status transition and never recomputed from
// booking fields later.
package policy

import (
	"time"

	"hotel-booking-be/internal/entity"

	"github.com/google/uuid"
)

// FullRefundWindow mirrors the owner cancellation window: a user cancelling
// with more than this much time before check-in gets the initial payment
// back in full, otherwise nothing.
const FullRefundWindow = 24 * time.Hour

// ComputeRefund returns the amount owed to the cancelling party.
// Administrators (and the system acting on a hotel de-approval, which runs
// under an admin principal) always refund the full initial payment.
func ComputeRefund(b *entity.Booking, actorRole entity.Role, now time.Time) float64 {
	if actorRole == entity.RoleAdmin {
		return b.InitialPayment
	}
	if b.CheckIn.Sub(now) > FullRefundWindow {
		return b.InitialPayment
	}
	return 0
}

// RefundStatusFor maps an entitlement to the initial refund bookkeeping
// state: pending when something is owed, none otherwise.
func RefundStatusFor(amount float64) entity.RefundStatus {
	if amount > 0 {
		return entity.RefundStatusPending
	}
	return entity.RefundStatusNone
}

// ReasonFor picks the audit token for a cancellation. Tokens are a closed
// set; actor identity goes into cancelled_by, never into the reason.
func ReasonFor(actor entity.Principal, owner uuid.UUID, cascade bool) entity.CancellationReason {
	if cascade {
		return entity.ReasonPolicyCancel
	}
	if actor.UserID == owner && !actor.IsAdmin() {
		return entity.ReasonSelfCancel
	}
	return entity.ReasonAdminCancel
}
