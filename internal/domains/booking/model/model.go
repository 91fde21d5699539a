package model

import (
	"time"

	"roam/shared/constant"
	"roam/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldBookingReference   = "booking_reference"
	FieldUserID             = "user_id"
	FieldHotelID            = "hotel_id"
	FieldCheckInDate        = "check_in_date"
	FieldCheckOutDate       = "check_out_date"
	FieldNights             = "nights"
	FieldNumberOfGuests     = "number_of_guests"
	FieldNumberOfRooms      = "number_of_rooms"
	FieldTotalPrice         = "total_price"
	FieldStatus             = "status"
	FieldPaymentStatus      = "payment_status"
	FieldContactEmail       = "contact_email"
	FieldContactPhone       = "contact_phone"
	FieldSpecialRequests    = "special_requests"
	FieldCancellationReason = "cancellation_reason"
	FieldCancellationDate   = "cancellation_date"
)

type Booking struct {
	ID                 string     `db:"id"`
	BookingReference   string     `db:"booking_reference"`
	UserID             string     `db:"user_id"`
	HotelID            string     `db:"hotel_id"`
	CheckInDate        time.Time  `db:"check_in_date"`
	CheckOutDate       time.Time  `db:"check_out_date"`
	Nights             int        `db:"nights"`
	NumberOfGuests     int        `db:"number_of_guests"`
	NumberOfRooms      int        `db:"number_of_rooms"`
	TotalPrice         float64    `db:"total_price"`
	Status             string     `db:"status"`
	PaymentStatus      string     `db:"payment_status"`
	ContactEmail       string     `db:"contact_email"`
	ContactPhone       *string    `db:"contact_phone"`
	SpecialRequests    *string    `db:"special_requests"`
	CancellationReason *string    `db:"cancellation_reason"`
	CancellationDate   *time.Time `db:"cancellation_date"`
	HotelName          string     `db:"hotel_name" table:"hotels" column:"name"`
	HotelCity          string     `db:"hotel_city" table:"hotels" column:"city"`
	model.Metadata
}

func (b Booking) GetJoinQuery() string {
	return "LEFT JOIN hotels ON hotels.id = bookings.hotel_id"
}

// CanBeCancelled reports whether the booking is still in a cancellable state.
func (b Booking) CanBeCancelled() bool {
	return b.Status == constant.BookingStatusPending || b.Status == constant.BookingStatusConfirmed
}

// IsFinal reports whether the booking has left the mutable part of its
// lifecycle.
func (b Booking) IsFinal() bool {
	return b.Status == constant.BookingStatusCompleted || b.Status == constant.BookingStatusCancelled
}
