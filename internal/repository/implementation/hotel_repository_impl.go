package implementation

import (
	"context"

	"hotel-booking-be/internal/entity"
	"hotel-booking-be/internal/model"
	"hotel-booking-be/internal/repository/contract"
	"hotel-booking-be/internal/repository/specification"

	"gorm.io/gorm"
)

type hotelRepositoryImpl struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) contract.HotelRepository {
	return &hotelRepositoryImpl{db: db}
}

func (r *hotelRepositoryImpl) Create(ctx context.Context, hotel *entity.Hotel) error {
	return r.db.WithContext(ctx).Create(r.mapToModel(hotel)).Error
}

func (r *hotelRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Hotel, error) {
	var m model.Hotel
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
	return r.mapToEntity(&m), nil
}

func (r *hotelRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Hotel, error) {
	var models []*model.Hotel
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	var hotels []*entity.Hotel
	for _, m := range models {
		hotels = append(hotels, r.mapToEntity(m))
	}
	return hotels, nil
}

func (r *hotelRepositoryImpl) Update(ctx context.Context, hotel *entity.Hotel) error {
	return r.db.WithContext(ctx).Model(&model.Hotel{}).
		Where("id = ?", hotel.Id).
		Updates(map[string]interface{}{
			"name":           hotel.Name,
			"city":           hotel.City,
			"country":        hotel.Country,
			"nightly_price":  hotel.NightlyPrice,
			"currency":       hotel.Currency,
			"daily_capacity": hotel.DailyCapacity,
			"status":         string(hotel.Status),
		}).Error
}

func (r *hotelRepositoryImpl) mapToModel(h *entity.Hotel) *model.Hotel {
	return &model.Hotel{
		ID:            h.Id,
		OwnerID:       h.OwnerID,
		Name:          h.Name,
		City:          h.City,
		Country:       h.Country,
		NightlyPrice:  h.NightlyPrice,
		Currency:      h.Currency,
		DailyCapacity: h.DailyCapacity,
		Status:        string(h.Status),
	}
}

func (r *hotelRepositoryImpl) mapToEntity(m *model.Hotel) *entity.Hotel {
	return &entity.Hotel{
		Id:            m.ID,
		OwnerID:       m.OwnerID,
		Name:          m.Name,
		City:          m.City,
		Country:       m.Country,
		NightlyPrice:  m.NightlyPrice,
		Currency:      m.Currency,
		DailyCapacity: m.DailyCapacity,
		Status:        entity.HotelStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
