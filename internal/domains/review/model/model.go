package model

import (
	"roam/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldHotelID   = "hotel_id"
	FieldBookingID = "booking_id"
	FieldRating    = "rating"
	FieldTitle     = "title"
	FieldComment   = "comment"
)

type Review struct {
	ID        string  `db:"id"`
	UserID    string  `db:"user_id"`
	HotelID   string  `db:"hotel_id"`
	BookingID *string `db:"booking_id"`
	Rating    int     `db:"rating"`
	Title     *string `db:"title"`
	Comment   *string `db:"comment"`
	UserName  *string `db:"user_name" table:"users" column:"full_name"`
	model.Metadata
}

func (r Review) GetJoinQuery() string {
	return "LEFT JOIN users ON users.id = reviews.user_id"
}
