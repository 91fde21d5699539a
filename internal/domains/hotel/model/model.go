package model

import (
	"github.com/lib/pq"

	"roam/shared/model"
)

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID             = "id"
	FieldName           = "name"
	FieldDescription    = "description"
	FieldCity           = "city"
	FieldCountry        = "country"
	FieldAddress        = "address"
	FieldStarRating     = "star_rating"
	FieldAmenities      = "amenities"
	FieldPricePerNight  = "price_per_night"
	FieldTotalRooms     = "total_rooms"
	FieldAvailableRooms = "available_rooms"
	FieldImages         = "images"
	FieldActive         = "active"
)

type Hotel struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	Description    *string        `db:"description"`
	City           string         `db:"city"`
	Country        string         `db:"country"`
	Address        *string        `db:"address"`
	StarRating     int            `db:"star_rating"`
	Amenities      pq.StringArray `db:"amenities"`
	PricePerNight  float64        `db:"price_per_night"`
	TotalRooms     int            `db:"total_rooms"`
	AvailableRooms int            `db:"available_rooms"`
	Images         pq.StringArray `db:"images"`
	Active         bool           `db:"active"`
	model.Metadata
}
