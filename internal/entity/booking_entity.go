package entity

import (
	"math"
	"time"

	"hotel-booking-be/internal/apperr"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type RefundStatus string

const (
	RefundStatusNone    RefundStatus = "none"
	RefundStatusPending RefundStatus = "pending"
	RefundStatusIssued  RefundStatus = "issued"
)

// CancellationReason is a closed token set. Free text is deliberately not
// representable so the audit trail can never leak an actor's display name.
type CancellationReason string

const (
	ReasonSelfCancel   CancellationReason = "self-cancel"
	ReasonAdminCancel  CancellationReason = "admin-cancel"
	ReasonPolicyCancel CancellationReason = "policy-cancel"
)

type RefundChannel string

const (
	RefundChannelGateway RefundChannel = "gateway"
	RefundChannelManual  RefundChannel = "manual"
)

// RefundAttempt is one entry of the append-only refund log. ExternalRefundID
// is empty for manual-channel bookkeeping and for failed gateway calls.
type RefundAttempt struct {
	Actor            uuid.UUID     `json:"actor"`
	At               time.Time     `json:"at"`
	Channel          RefundChannel `json:"channel"`
	ExternalRefundID string        `json:"external_refund_id,omitempty"`
	Succeeded        bool          `json:"succeeded"`
}

// PaymentLink holds the gateway identifiers captured at verification time.
// Each field is write-once: populated at most once, never overwritten.
type PaymentLink struct {
	OrderID       string
	TransactionID string
	PaymentType   string
}

func (p PaymentLink) Empty() bool {
	return p.OrderID == "" && p.TransactionID == ""
}

type Booking struct {
	Id            uuid.UUID
	ReferenceCode string
	UserID        uuid.UUID
	HotelID       uuid.UUID

	CheckIn  time.Time
	CheckOut time.Time
	Nights   int

	Currency       string
	TotalPrice     float64
	InitialPayment float64
	RefundAmount   float64

	Status BookingStatus

	CancelledAt        *time.Time
	CancelledBy        *uuid.UUID
	CancellationReason CancellationReason

	RefundStatus RefundStatus
	RefundedAt   *time.Time
	RefundedBy   *uuid.UUID
	RefundLog    []RefundAttempt

	Payment PaymentLink

	CreatedBy   uuid.UUID
	OfflineCash bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CheckInHourUTC is the fixed time-of-day all stay boundaries are normalized
// to, making date-only comparisons unambiguous.
const CheckInHourUTC = 10

// NormalizeDate pins t to the fixed check-in hour in UTC.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), CheckInHourUTC, 0, 0, 0, time.UTC)
}

// NormalizeStay derives the missing one of {checkOut, nights} and validates
// checkIn < checkOut with nights = whole days between them, nights >= 1.
func NormalizeStay(checkIn time.Time, checkOut *time.Time, nights int) (time.Time, time.Time, int, error) {
	ci := NormalizeDate(checkIn)

	var co time.Time
	switch {
	case checkOut != nil && nights > 0:
		co = NormalizeDate(*checkOut)
		if got := int(co.Sub(ci).Hours() / 24); got != nights {
			return time.Time{}, time.Time{}, 0, apperr.New(apperr.KindValidation, "check-out date does not match number of nights")
		}
	case checkOut != nil:
		co = NormalizeDate(*checkOut)
		nights = int(co.Sub(ci).Hours() / 24)
	case nights > 0:
		co = ci.AddDate(0, 0, nights)
	default:
		return time.Time{}, time.Time{}, 0, apperr.New(apperr.KindValidation, "either check-out date or number of nights is required")
	}

	if nights < 1 || !ci.Before(co) {
		return time.Time{}, time.Time{}, 0, apperr.New(apperr.KindValidation, "stay must cover at least one night")
	}
	return ci, co, nights, nil
}

// DefaultInitialPayment is half the total, rounded to the nearest unit.
func DefaultInitialPayment(totalPrice float64) float64 {
	return math.Round(totalPrice / 2)
}

// Nights enumerates every occupied night in [CheckIn, CheckOut). The
// check-out day itself is never occupied.
func (b *Booking) StayNights() []time.Time {
	nights := make([]time.Time, 0, b.Nights)
	for d := b.CheckIn; d.Before(b.CheckOut); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

// Occupies reports whether the stay covers the given night, half-open.
func (b *Booking) Occupies(night time.Time) bool {
	return !night.Before(b.CheckIn) && night.Before(b.CheckOut)
}
