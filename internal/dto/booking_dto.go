package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateBookingRequest carries dates as "2006-01-02" strings; either
// check_out_date or days must be present (both is allowed if they agree).
type CreateBookingRequest struct {
	HotelId      uuid.UUID `json:"hotel_id" validate:"required"`
	CheckInDate  string    `json:"check_in_date" validate:"required"`
	CheckOutDate string    `json:"check_out_date,omitempty"`
	Days         int       `json:"days,omitempty" validate:"omitempty,min=1"`

	// InitialPayment overrides the default 50% deposit when > 0.
	InitialPayment float64 `json:"initial_payment,omitempty" validate:"omitempty,gt=0"`

	// PaymentOrderId is the gateway order id the client already paid against.
	// Empty means offline/cash intake.
	PaymentOrderId string `json:"payment_order_id,omitempty"`
	OfflineCash    bool   `json:"offline_cash,omitempty"`

	// UserId lets staff record a booking on behalf of a guest. Ignored for
	// non-admin callers.
	UserId *uuid.UUID `json:"user_id,omitempty"`
}

type RefundAttemptResponse struct {
	Actor            uuid.UUID `json:"actor"`
	At               time.Time `json:"at"`
	Channel          string    `json:"channel"`
	ExternalRefundID string    `json:"external_refund_id,omitempty"`
	Succeeded        bool      `json:"succeeded"`
}

type BookingResponse struct {
	Id            uuid.UUID `json:"id"`
	ReferenceCode string    `json:"reference_code"`
	UserId        uuid.UUID `json:"user_id"`
	HotelId       uuid.UUID `json:"hotel_id"`

	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Nights       int    `json:"nights"`

	Currency       string  `json:"currency"`
	TotalPrice     float64 `json:"total_price"`
	InitialPayment float64 `json:"initial_payment"`
	RefundAmount   float64 `json:"refund_amount"`

	Status string `json:"status"`

	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`

	RefundStatus string                  `json:"refund_status"`
	RefundedAt   *time.Time              `json:"refunded_at,omitempty"`
	RefundLog    []RefundAttemptResponse `json:"refund_log,omitempty"`

	PaymentOrderId string `json:"payment_order_id,omitempty"`
	PaymentType    string `json:"payment_type,omitempty"`
	OfflineCash    bool   `json:"offline_cash,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// CascadeItem reports the per-booking outcome of a hotel-wide cancellation.
type CascadeItem struct {
	BookingId uuid.UUID `json:"booking_id"`
	Cancelled bool      `json:"cancelled"`
	Error     string    `json:"error,omitempty"`
}

type CascadeResult struct {
	HotelId   uuid.UUID     `json:"hotel_id"`
	Attempted int           `json:"attempted"`
	Cancelled int           `json:"cancelled"`
	Items     []CascadeItem `json:"items"`
}
