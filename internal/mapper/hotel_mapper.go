package mapper

import (
	"hotel-booking-be/internal/dto"
	"hotel-booking-be/internal/entity"
)

type HotelMapper struct{}

func NewHotelMapper() *HotelMapper {
	return &HotelMapper{}
}

func (m *HotelMapper) ToResponse(h *entity.Hotel) *dto.HotelResponse {
	if h == nil {
		return nil
	}

	return &dto.HotelResponse{
		Id:            h.Id,
		OwnerId:       h.OwnerID,
		Name:          h.Name,
		City:          h.City,
		Country:       h.Country,
		NightlyPrice:  h.NightlyPrice,
		Currency:      h.Currency,
		DailyCapacity: h.DailyCapacity,
		Status:        string(h.Status),
		CreatedAt:     h.CreatedAt,
	}
}

func (m *HotelMapper) ToResponseList(hotels []*entity.Hotel) []*dto.HotelResponse {
	res := make([]*dto.HotelResponse, 0, len(hotels))
	for _, h := range hotels {
		res = append(res, m.ToResponse(h))
	}
	return res
}
