package model

import (
	"roam/shared/model"
)

const (
	TableName  = "favorites"
	EntityName = "favorite"

	FieldID      = "id"
	FieldUserID  = "user_id"
	FieldHotelID = "hotel_id"
)

type Favorite struct {
	ID                 string  `db:"id"`
	UserID             string  `db:"user_id"`
	HotelID            string  `db:"hotel_id"`
	HotelName          string  `db:"hotel_name"            table:"hotels" column:"name"`
	HotelCity          string  `db:"hotel_city"            table:"hotels" column:"city"`
	HotelStarRating    int     `db:"hotel_star_rating"     table:"hotels" column:"star_rating"`
	HotelPricePerNight float64 `db:"hotel_price_per_night" table:"hotels" column:"price_per_night"`
	model.Metadata
}

func (f Favorite) GetJoinQuery() string {
	return "LEFT JOIN hotels ON hotels.id = favorites.hotel_id"
}
