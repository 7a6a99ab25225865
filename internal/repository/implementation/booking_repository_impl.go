package implementation

import (
	"context"
	"encoding/json"

	"hotel-booking-be/internal/entity"
	"hotel-booking-be/internal/model"
	"hotel-booking-be/internal/repository/contract"
	"hotel-booking-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type bookingRepositoryImpl struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) contract.BookingRepository {
	return &bookingRepositoryImpl{db: db}
}

func (r *bookingRepositoryImpl) Create(ctx context.Context, booking *entity.Booking) error {
	m, err := r.mapToModel(booking)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *bookingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	var m model.Booking
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&m)
}

func (r *bookingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	var models []*model.Booking
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	var bookings []*entity.Booking
	for _, m := range models {
		b, err := r.mapToEntity(m)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *bookingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Booking{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *bookingRepositoryImpl) Update(ctx context.Context, booking *entity.Booking) error {
	m, err := r.mapToModel(booking)
	if err != nil {
		return err
	}
	// Save writes all columns at once; cancellation audit, refund status and
	// the refund log land in the same statement.
	return r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"status":                 m.Status,
			"cancelled_at":           m.CancelledAt,
			"cancelled_by":           m.CancelledBy,
			"cancellation_reason":    m.CancellationReason,
			"refund_amount":          m.RefundAmount,
			"refund_status":          m.RefundStatus,
			"refunded_at":            m.RefundedAt,
			"refunded_by":            m.RefundedBy,
			"refund_log":             m.RefundLog,
			"payment_order_id":       m.PaymentOrderID,
			"payment_transaction_id": m.PaymentTransactionID,
			"payment_type":           m.PaymentType,
		}).Error
}

func (r *bookingRepositoryImpl) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&model.Booking{}, "id = ?", id).Error
}

func (r *bookingRepositoryImpl) mapToModel(b *entity.Booking) (*model.Booking, error) {
	log := b.RefundLog
	if log == nil {
		log = []entity.RefundAttempt{}
	}
	logJSON, err := json.Marshal(log)
	if err != nil {
		return nil, err
	}
	return &model.Booking{
		ID:                   b.Id,
		ReferenceCode:        b.ReferenceCode,
		UserID:               b.UserID,
		HotelID:              b.HotelID,
		CheckIn:              b.CheckIn,
		CheckOut:             b.CheckOut,
		Nights:               b.Nights,
		Currency:             b.Currency,
		TotalPrice:           b.TotalPrice,
		InitialPayment:       b.InitialPayment,
		RefundAmount:         b.RefundAmount,
		Status:               string(b.Status),
		CancelledAt:          b.CancelledAt,
		CancelledBy:          b.CancelledBy,
		CancellationReason:   string(b.CancellationReason),
		RefundStatus:         string(b.RefundStatus),
		RefundedAt:           b.RefundedAt,
		RefundedBy:           b.RefundedBy,
		RefundLog:            datatypes.JSON(logJSON),
		PaymentOrderID:       b.Payment.OrderID,
		PaymentTransactionID: b.Payment.TransactionID,
		PaymentType:          b.Payment.PaymentType,
		CreatedBy:            b.CreatedBy,
		OfflineCash:          b.OfflineCash,
	}, nil
}

func (r *bookingRepositoryImpl) mapToEntity(m *model.Booking) (*entity.Booking, error) {
	var log []entity.RefundAttempt
	if len(m.RefundLog) > 0 {
		if err := json.Unmarshal(m.RefundLog, &log); err != nil {
			return nil, err
		}
	}
	return &entity.Booking{
		Id:                 m.ID,
		ReferenceCode:      m.ReferenceCode,
		UserID:             m.UserID,
		HotelID:            m.HotelID,
		CheckIn:            m.CheckIn,
		CheckOut:           m.CheckOut,
		Nights:             m.Nights,
		Currency:           m.Currency,
		TotalPrice:         m.TotalPrice,
		InitialPayment:     m.InitialPayment,
		RefundAmount:       m.RefundAmount,
		Status:             entity.BookingStatus(m.Status),
		CancelledAt:        m.CancelledAt,
		CancelledBy:        m.CancelledBy,
		CancellationReason: entity.CancellationReason(m.CancellationReason),
		RefundStatus:       entity.RefundStatus(m.RefundStatus),
		RefundedAt:         m.RefundedAt,
		RefundedBy:         m.RefundedBy,
		RefundLog:          log,
		Payment: entity.PaymentLink{
			OrderID:       m.PaymentOrderID,
			TransactionID: m.PaymentTransactionID,
			PaymentType:   m.PaymentType,
		},
		CreatedBy:   m.CreatedBy,
		OfflineCash: m.OfflineCash,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}
