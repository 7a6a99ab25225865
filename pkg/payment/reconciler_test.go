package payment

import (
	"context"
	"errors"
	"testing"

	"hotel-booking-be/internal/apperr"
	"hotel-booking-be/internal/entity"
	"hotel-booking-be/internal/pkg/logger"
	"hotel-booking-be/internal/repository/contract"
	"hotel-booking-be/internal/repository/specification"
	"hotel-booking-be/pkg/currency"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeGateway struct {
	available bool
	tx        *Transaction
	txErr     error
	refund    *Refund
	refundErr error

	refundCalls int
	lastRef     PaymentRef
}

func (g *fakeGateway) Available() bool { return g.available }

func (g *fakeGateway) GetTransaction(ctx context.Context, orderID string) (*Transaction, error) {
	return g.tx, g.txErr
}

func (g *fakeGateway) CreateRefund(ctx context.Context, ref PaymentRef, amount float64, refundKey string) (*Refund, error) {
	g.refundCalls++
	g.lastRef = ref
	return g.refund, g.refundErr
}

type recordingBookingRepo struct {
	updates []*entity.Booking
}

func (r *recordingBookingRepo) Create(ctx context.Context, b *entity.Booking) error { return nil }
func (r *recordingBookingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	return nil, nil
}
func (r *recordingBookingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	return nil, nil
}
func (r *recordingBookingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *recordingBookingRepo) Update(ctx context.Context, b *entity.Booking) error {
	copied := *b
	r.updates = append(r.updates, &copied)
	return nil
}
func (r *recordingBookingRepo) HardDelete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeUow struct {
	bookings *recordingBookingRepo
}

func (f *fakeUow) Begin(ctx context.Context) error                     { return nil }
func (f *fakeUow) Commit() error                                       { return nil }
func (f *fakeUow) Rollback() error                                     { return nil }
func (f *fakeUow) BookingRepository() contract.BookingRepository       { return f.bookings }
func (f *fakeUow) HotelRepository() contract.HotelRepository           { return nil }
func (f *fakeUow) UserRepository() contract.UserRepository             { return nil }

func newReconciler(g Gateway) *Reconciler {
	rates := currency.NewConverter(currency.Config{Fallback: 1}, logger.NewNopLogger())
	return NewReconciler(g, rates, logger.NewNopLogger(), Config{
		SettlementCurrency: "IDR",
		AmountTolerance:    2,
	})
}

func TestVerifyPayment_GatewayUnavailable(t *testing.T) {
	r := newReconciler(&fakeGateway{available: false})

	_, err := r.VerifyPayment(context.Background(), "order-1", 100, "IDR")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindGatewayUnavailable, apperr.KindOf(err))
}

func TestVerifyPayment_GatewayFailure(t *testing.T) {
	r := newReconciler(&fakeGateway{available: true, txErr: errors.New("timeout")})

	_, err := r.VerifyPayment(context.Background(), "order-1", 100, "IDR")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindGatewayFailure, apperr.KindOf(err))
}

func TestVerifyPayment_Incomplete(t *testing.T) {
	r := newReconciler(&fakeGateway{available: true, tx: &Transaction{
		OrderID:     "order-1",
		Status:      "pending",
		GrossAmount: 100,
	}})

	_, err := r.VerifyPayment(context.Background(), "order-1", 100, "IDR")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindPaymentIncomplete, apperr.KindOf(err))
}

func TestVerifyPayment_AmountMismatch(t *testing.T) {
	r := newReconciler(&fakeGateway{available: true, tx: &Transaction{
		OrderID:     "order-1",
		Status:      "settlement",
		GrossAmount: 90,
	}})

	_, err := r.VerifyPayment(context.Background(), "order-1", 100, "IDR")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindPaymentMismatch, apperr.KindOf(err))
}

func TestVerifyPayment_WithinTolerance(t *testing.T) {
	r := newReconciler(&fakeGateway{available: true, tx: &Transaction{
		OrderID:       "order-1",
		TransactionID: "txn-9",
		Status:        "capture",
		GrossAmount:   101.5,
	}})

	tx, err := r.VerifyPayment(context.Background(), "order-1", 100, "IDR")
	assert.NoError(t, err)
	assert.Equal(t, "txn-9", tx.TransactionID)
}

func cancelledBooking(refund float64) *entity.Booking {
	return &entity.Booking{
		Id:             uuid.New(),
		ReferenceCode:  "REF123",
		UserID:         uuid.New(),
		Status:         entity.BookingStatusCancelled,
		RefundAmount:   refund,
		RefundStatus:   entity.RefundStatusPending,
		InitialPayment: refund,
	}
}

func TestIssueRefund_AlreadyIssued(t *testing.T) {
	g := &fakeGateway{available: true}
	r := newReconciler(g)
	uow := &fakeUow{bookings: &recordingBookingRepo{}}

	b := cancelledBooking(100)
	b.RefundStatus = entity.RefundStatusIssued

	_, err := r.IssueRefund(context.Background(), uow, b, entity.Principal{Role: entity.RoleAdmin})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindAlreadyIssued, apperr.KindOf(err))
	assert.Empty(t, b.RefundLog)
	assert.Empty(t, uow.bookings.updates)
	assert.Zero(t, g.refundCalls)
}

func TestIssueRefund_NothingDue(t *testing.T) {
	r := newReconciler(&fakeGateway{available: true})
	uow := &fakeUow{bookings: &recordingBookingRepo{}}

	b := cancelledBooking(0)
	b.RefundStatus = entity.RefundStatusNone

	_, err := r.IssueRefund(context.Background(), uow, b, entity.Principal{Role: entity.RoleAdmin})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindNoRefundDue, apperr.KindOf(err))
}

func TestIssueRefund_ManualChannelWithoutGatewayIds(t *testing.T) {
	g := &fakeGateway{available: true}
	r := newReconciler(g)
	uow := &fakeUow{bookings: &recordingBookingRepo{}}

	b := cancelledBooking(100)

	updated, err := r.IssueRefund(context.Background(), uow, b, entity.Principal{UserID: uuid.New(), Role: entity.RoleAdmin})
	assert.NoError(t, err)
	assert.Equal(t, entity.RefundStatusIssued, updated.RefundStatus)
	assert.NotNil(t, updated.RefundedAt)
	assert.Len(t, updated.RefundLog, 1)
	assert.Equal(t, entity.RefundChannelManual, updated.RefundLog[0].Channel)
	assert.True(t, updated.RefundLog[0].Succeeded)
	assert.Zero(t, g.refundCalls)
	assert.Len(t, uow.bookings.updates, 1)
}

func TestIssueRefund_ChargePreferredOverIntent(t *testing.T) {
	g := &fakeGateway{available: true, refund: &Refund{ID: "rf-1"}}
	r := newReconciler(g)
	uow := &fakeUow{bookings: &recordingBookingRepo{}}

	b := cancelledBooking(100)
	b.Payment = entity.PaymentLink{OrderID: "order-1", TransactionID: "txn-9"}

	updated, err := r.IssueRefund(context.Background(), uow, b, entity.Principal{UserID: uuid.New(), Role: entity.RoleAdmin})
	assert.NoError(t, err)
	assert.Equal(t, RefCharge, g.lastRef.Kind)
	assert.Equal(t, "txn-9", g.lastRef.ID)
	assert.Equal(t, entity.RefundStatusIssued, updated.RefundStatus)
	assert.Equal(t, "rf-1", updated.RefundLog[0].ExternalRefundID)
	assert.Equal(t, entity.RefundChannelGateway, updated.RefundLog[0].Channel)
}

func TestIssueRefund_IntentWhenNoCharge(t *testing.T) {
	g := &fakeGateway{available: true, refund: &Refund{ID: "rf-2"}}
	r := newReconciler(g)
	uow := &fakeUow{bookings: &recordingBookingRepo{}}

	b := cancelledBooking(100)
	b.Payment = entity.PaymentLink{OrderID: "order-1"}

	_, err := r.IssueRefund(context.Background(), uow, b, entity.Principal{UserID: uuid.New(), Role: entity.RoleAdmin})
	assert.NoError(t, err)
	assert.Equal(t, RefIntent, g.lastRef.Kind)
	assert.Equal(t, "order-1", g.lastRef.ID)
}

func TestIssueRefund_GatewayFailureLeavesPending(t *testing.T) {
	g := &fakeGateway{available: true, refundErr: errors.New("rejected")}
	r := newReconciler(g)
	uow := &fakeUow{bookings: &recordingBookingRepo{}}

	b := cancelledBooking(100)
	b.Payment = entity.PaymentLink{TransactionID: "txn-9"}

	_, err := r.IssueRefund(context.Background(), uow, b, entity.Principal{UserID: uuid.New(), Role: entity.RoleAdmin})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindGatewayFailure, apperr.KindOf(err))

	// The failed attempt is still recorded and the refund stays pending.
	assert.Equal(t, entity.RefundStatusPending, b.RefundStatus)
	assert.Nil(t, b.RefundedAt)
	assert.Len(t, b.RefundLog, 1)
	assert.False(t, b.RefundLog[0].Succeeded)
	assert.Len(t, uow.bookings.updates, 1)
}

func TestIssueRefund_GatewayUnavailableLeavesPending(t *testing.T) {
	g := &fakeGateway{available: false}
	r := newReconciler(g)
	uow := &fakeUow{bookings: &recordingBookingRepo{}}

	b := cancelledBooking(100)
	b.Payment = entity.PaymentLink{TransactionID: "txn-9"}

	_, err := r.IssueRefund(context.Background(), uow, b, entity.Principal{UserID: uuid.New(), Role: entity.RoleAdmin})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindGatewayUnavailable, apperr.KindOf(err))
	assert.Equal(t, entity.RefundStatusPending, b.RefundStatus)
}

func TestResolvePaymentRef(t *testing.T) {
	assert.Equal(t, RefNone, ResolvePaymentRef(entity.PaymentLink{}).Kind)
	assert.Equal(t, RefIntent, ResolvePaymentRef(entity.PaymentLink{OrderID: "o"}).Kind)
	assert.Equal(t, RefCharge, ResolvePaymentRef(entity.PaymentLink{OrderID: "o", TransactionID: "t"}).Kind)
}
