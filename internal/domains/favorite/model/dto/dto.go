package dto

import (
	"github.com/google/uuid"

	"roam/internal/domains/favorite/model"
	"roam/shared"
	gDto "roam/shared/dto"
	gModel "roam/shared/model"
	"roam/shared/timezone"
)

type CreateFavoriteRequest struct {
	HotelID string `json:"hotel_id" validate:"required,uuid"`
}

func (c *CreateFavoriteRequest) ToModel(user string) model.Favorite {
	return model.Favorite{
		ID:      uuid.NewString(),
		UserID:  user,
		HotelID: c.HotelID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type FavoriteResponse struct {
	ID                 string  `json:"id"`
	UserID             string  `json:"user_id"`
	HotelID            string  `json:"hotel_id"`
	HotelName          string  `json:"hotel_name"`
	HotelCity          string  `json:"hotel_city"`
	HotelStarRating    int     `json:"hotel_star_rating"`
	HotelPricePerNight float64 `json:"hotel_price_per_night"`
	gDto.Metadata
}

func (r *FavoriteResponse) FromModel(model model.Favorite) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.HotelID = model.HotelID
	r.HotelName = model.HotelName
	r.HotelCity = model.HotelCity
	r.HotelStarRating = model.HotelStarRating
	r.HotelPricePerNight = model.HotelPricePerNight
	r.Metadata.FromModel(model.Metadata)
}

type GetFavoritesResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetFavoritesResponse) FromModels(models []model.Favorite, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Favorites = make([]FavoriteResponse, len(models))
	for i, mod := range models {
		r.Favorites[i].FromModel(mod)
	}
}
