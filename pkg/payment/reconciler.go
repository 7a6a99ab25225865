package payment

import (
	"context"
	"fmt"
	"math"
	"time"

	"hotel-booking-be/internal/apperr"
	"hotel-booking-be/internal/entity"
	"hotel-booking-be/internal/pkg/logger"
	"hotel-booking-be/internal/repository/unitofwork"
	"hotel-booking-be/pkg/currency"
)

type Config struct {
	// SettlementCurrency is what the gateway settles in (midtrans: IDR).
	SettlementCurrency string
	// AmountTolerance is the absolute slack, in settlement currency minor
	// units, allowed between the expected and verified amount.
	AmountTolerance float64
}

// Reconciler merges gateway responses back into booking state. It owns the
// two directions of gateway traffic: verify-on-create and refund-on-cancel.
type Reconciler struct {
	gateway Gateway
	rates   *currency.Converter
	logger  logger.ILogger
	cfg     Config
}

func NewReconciler(gateway Gateway, rates *currency.Converter, log logger.ILogger, cfg Config) *Reconciler {
	return &Reconciler{
		gateway: gateway,
		rates:   rates,
		logger:  log,
		cfg:     cfg,
	}
}

// VerifyPayment retrieves the transaction the caller claims to have paid and
// checks it settled for the expected initial payment. The expected amount is
// stated in the booking currency and converted to the gateway's settlement
// currency before comparison.
func (r *Reconciler) VerifyPayment(ctx context.Context, orderID string, expected float64, bookingCurrency string) (*Transaction, error) {
	if !r.gateway.Available() {
		return nil, apperr.New(apperr.KindGatewayUnavailable, "payment gateway is not configured")
	}

	tx, err := r.gateway.GetTransaction(ctx, orderID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindGatewayFailure, "could not retrieve payment from gateway", err)
	}

	if !tx.Settled() {
		return nil, apperr.New(apperr.KindPaymentIncomplete, "payment has not been completed").
			WithMeta("gateway_status", tx.Status)
	}

	rate := r.rates.Rate(ctx, bookingCurrency, r.cfg.SettlementCurrency)
	expectedSettled := expected * rate
	if math.Abs(tx.GrossAmount-expectedSettled) > r.cfg.AmountTolerance {
		return nil, apperr.New(apperr.KindPaymentMismatch, "paid amount does not match the booking").
			WithMeta("expected", expectedSettled).
			WithMeta("verified", tx.GrossAmount)
	}

	return tx, nil
}

// IssueRefund attempts to settle the booking's refund entitlement with the
// gateway and records the outcome. The attempt is appended to the refund log
// and persisted in the same document write as the refund status, so readers
// never see one without the other.
//
// A booking with no gateway identifiers is bookkept as refunded through the
// "manual" channel without any gateway call. A failed gateway call leaves
// the refund pending for retry; the booking's cancellation is untouched.
func (r *Reconciler) IssueRefund(ctx context.Context, uow unitofwork.UnitOfWork, b *entity.Booking, actor entity.Principal) (*entity.Booking, error) {
	if b.RefundStatus == entity.RefundStatusIssued {
		return nil, apperr.New(apperr.KindAlreadyIssued, "refund has already been issued")
	}
	if b.RefundAmount <= 0 {
		return nil, apperr.New(apperr.KindNoRefundDue, "no refund is due for this booking")
	}

	now := time.Now().UTC()
	ref := ResolvePaymentRef(b.Payment)

	attempt := entity.RefundAttempt{
		Actor:   actor.UserID,
		At:      now,
		Channel: entity.RefundChannelGateway,
	}

	var gatewayErr error
	switch {
	case ref.Kind == RefNone:
		// Offline or unverified payment: nothing to call, bookkeeping only.
		attempt.Channel = entity.RefundChannelManual
		attempt.Succeeded = true
	case !r.gateway.Available():
		gatewayErr = apperr.New(apperr.KindGatewayUnavailable, "payment gateway is not configured")
	default:
		refundKey := fmt.Sprintf("refund-%s", b.ReferenceCode)
		refund, err := r.gateway.CreateRefund(ctx, ref, b.RefundAmount, refundKey)
		if err != nil {
			gatewayErr = apperr.Wrap(apperr.KindGatewayFailure, "gateway refund failed", err)
		} else {
			attempt.ExternalRefundID = refund.ID
			attempt.Succeeded = true
		}
	}

	b.RefundLog = append(b.RefundLog, attempt)
	if attempt.Succeeded {
		b.RefundStatus = entity.RefundStatusIssued
		b.RefundedAt = &now
		actorID := actor.UserID
		b.RefundedBy = &actorID
	}

	if err := uow.BookingRepository().Update(ctx, b); err != nil {
		return nil, err
	}

	if gatewayErr != nil {
		r.logger.Error("PAYMENT", "Refund attempt failed, left pending for retry", map[string]interface{}{
			"bookingId": b.Id.String(),
			"refKind":   string(ref.Kind),
			"error":     gatewayErr.Error(),
		})
		return nil, gatewayErr
	}

	r.logger.Info("PAYMENT", "Refund issued", map[string]interface{}{
		"bookingId": b.Id.String(),
		"amount":    b.RefundAmount,
		"channel":   string(attempt.Channel),
	})
	return b, nil
}
