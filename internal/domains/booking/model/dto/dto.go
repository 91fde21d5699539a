package dto

import (
	"time"

	"github.com/google/uuid"

	"roam/internal/domains/booking/model"
	"roam/shared"
	"roam/shared/constant"
	gDto "roam/shared/dto"
	gModel "roam/shared/model"
	"roam/shared/timezone"
)

type CreateBookingRequest struct {
	HotelID         string  `json:"hotel_id"         validate:"required"`
	CheckInDate     string  `json:"check_in_date"    validate:"required,staydate"`
	CheckOutDate    string  `json:"check_out_date"   validate:"required,staydate"`
	NumberOfGuests  int     `json:"number_of_guests" validate:"required,min=1,max=20"`
	NumberOfRooms   int     `json:"number_of_rooms"  validate:"required,min=1,max=10"`
	ContactEmail    string  `json:"contact_email"    validate:"required,email,max=100"`
	ContactPhone    *string `json:"contact_phone,omitempty"    validate:"omitempty,max=20"`
	SpecialRequests *string `json:"special_requests,omitempty" validate:"omitempty,max=1000"`
}

// StayDates parses the requested stay window in the service timezone.
func (c *CreateBookingRequest) StayDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.Parse(constant.StayDateFormat, c.CheckInDate)
	if err != nil {
		return checkIn, checkOut, err
	}

	checkOut, err = timezone.Parse(constant.StayDateFormat, c.CheckOutDate)

	return checkIn, checkOut, err
}

func (c *CreateBookingRequest) ToModel(user, reference string, checkIn, checkOut time.Time, nights int, totalPrice float64) model.Booking {
	return model.Booking{
		ID:               uuid.NewString(),
		BookingReference: reference,
		UserID:           user,
		HotelID:          c.HotelID,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		Nights:           nights,
		NumberOfGuests:   c.NumberOfGuests,
		NumberOfRooms:    c.NumberOfRooms,
		TotalPrice:       totalPrice,
		Status:           constant.BookingStatusPending,
		PaymentStatus:    constant.PaymentStatusPending,
		ContactEmail:     c.ContactEmail,
		ContactPhone:     c.ContactPhone,
		SpecialRequests:  c.SpecialRequests,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBookingRequest struct {
	CheckInDate     *string `json:"check_in_date,omitempty"    validate:"omitempty,staydate"`
	CheckOutDate    *string `json:"check_out_date,omitempty"   validate:"omitempty,staydate"`
	NumberOfGuests  *int    `json:"number_of_guests,omitempty" validate:"omitempty,min=1,max=20"`
	NumberOfRooms   *int    `json:"number_of_rooms,omitempty"  validate:"omitempty,min=1,max=10"`
	ContactEmail    *string `json:"contact_email,omitempty"    validate:"omitempty,email,max=100"`
	ContactPhone    *string `json:"contact_phone,omitempty"    validate:"omitempty,max=20"`
	SpecialRequests *string `json:"special_requests,omitempty" validate:"omitempty,max=1000"`
}

// ChangesStay reports whether the update touches dates or room count and so
// requires re-pricing and inventory reconciliation.
func (u *UpdateBookingRequest) ChangesStay() bool {
	return u.CheckInDate != nil || u.CheckOutDate != nil || u.NumberOfRooms != nil
}

type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellation_reason,omitempty" validate:"omitempty,max=500"`
}

type UpdateBookingStatusRequest struct {
	Status        *string `json:"status,omitempty"         validate:"omitempty,oneof=confirmed completed"`
	PaymentStatus *string `json:"payment_status,omitempty" validate:"omitempty,oneof=pending paid failed refunded"`
}

type BookingResponse struct {
	ID                 string  `json:"id"`
	BookingReference   string  `json:"booking_reference"`
	UserID             string  `json:"user_id"`
	HotelID            string  `json:"hotel_id"`
	HotelName          string  `json:"hotel_name,omitempty"`
	HotelCity          string  `json:"hotel_city,omitempty"`
	CheckInDate        string  `json:"check_in_date"`
	CheckOutDate       string  `json:"check_out_date"`
	Nights             int     `json:"nights"`
	NumberOfGuests     int     `json:"number_of_guests"`
	NumberOfRooms      int     `json:"number_of_rooms"`
	TotalPrice         float64 `json:"total_price"`
	Status             string  `json:"status"`
	PaymentStatus      string  `json:"payment_status"`
	ContactEmail       string  `json:"contact_email"`
	ContactPhone       *string `json:"contact_phone,omitempty"`
	SpecialRequests    *string `json:"special_requests,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`
	CancellationDate   *string `json:"cancellation_date,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.BookingReference = model.BookingReference
	r.UserID = model.UserID
	r.HotelID = model.HotelID
	r.HotelName = model.HotelName
	r.HotelCity = model.HotelCity
	r.CheckInDate = model.CheckInDate.Format(constant.StayDateFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.StayDateFormat)
	r.Nights = model.Nights
	r.NumberOfGuests = model.NumberOfGuests
	r.NumberOfRooms = model.NumberOfRooms
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.PaymentStatus = model.PaymentStatus
	r.ContactEmail = model.ContactEmail
	r.ContactPhone = model.ContactPhone
	r.SpecialRequests = model.SpecialRequests
	r.CancellationReason = model.CancellationReason

	if model.CancellationDate != nil {
		cancelled := timezone.Format(*model.CancellationDate, constant.DateFormat)
		r.CancellationDate = &cancelled
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
