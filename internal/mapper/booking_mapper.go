package mapper

import (
	"hotel-booking-be/internal/dto"
	"hotel-booking-be/internal/entity"
)

type BookingMapper struct{}

func NewBookingMapper() *BookingMapper {
	return &BookingMapper{}
}

const dateLayout = "2006-01-02"

func (m *BookingMapper) ToResponse(b *entity.Booking) *dto.BookingResponse {
	if b == nil {
		return nil
	}

	var log []dto.RefundAttemptResponse
	for _, a := range b.RefundLog {
		log = append(log, dto.RefundAttemptResponse{
			Actor:            a.Actor,
			At:               a.At,
			Channel:          string(a.Channel),
			ExternalRefundID: a.ExternalRefundID,
			Succeeded:        a.Succeeded,
		})
	}

	return &dto.BookingResponse{
		Id:                 b.Id,
		ReferenceCode:      b.ReferenceCode,
		UserId:             b.UserID,
		HotelId:            b.HotelID,
		CheckInDate:        b.CheckIn.Format(dateLayout),
		CheckOutDate:       b.CheckOut.Format(dateLayout),
		Nights:             b.Nights,
		Currency:           b.Currency,
		TotalPrice:         b.TotalPrice,
		InitialPayment:     b.InitialPayment,
		RefundAmount:       b.RefundAmount,
		Status:             string(b.Status),
		CancelledAt:        b.CancelledAt,
		CancellationReason: string(b.CancellationReason),
		RefundStatus:       string(b.RefundStatus),
		RefundedAt:         b.RefundedAt,
		RefundLog:          log,
		PaymentOrderId:     b.Payment.OrderID,
		PaymentType:        b.Payment.PaymentType,
		OfflineCash:        b.OfflineCash,
		CreatedAt:          b.CreatedAt,
	}
}

func (m *BookingMapper) ToResponseList(bookings []*entity.Booking) []*dto.BookingResponse {
	res := make([]*dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		res = append(res, m.ToResponse(b))
	}
	return res
}
