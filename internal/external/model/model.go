package model

type FlightSearchRequest struct {
	Origin      string `json:"origin"      validate:"required,len=3,alpha"`
	Destination string `json:"destination" validate:"required,len=3,alpha"`
	Date        string `json:"date"        validate:"required,staydate"`
	Passengers  int    `json:"passengers"  validate:"required,min=1,max=9"`
}

type FlightOffer struct {
	Carrier       string  `json:"carrier"`
	FlightNumber  string  `json:"flight_number"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	SeatsLeft     int     `json:"seats_left"`
}

type FlightSearchResponse struct {
	Offers []FlightOffer `json:"offers"`
}

type HotelSearchRequest struct {
	City     string `json:"city"      validate:"required,min=2,max=100"`
	CheckIn  string `json:"check_in"  validate:"required,staydate"`
	CheckOut string `json:"check_out" validate:"required,staydate"`
}

type HotelContent struct {
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	StarRating    int      `json:"star_rating"`
	PricePerNight float64  `json:"price_per_night"`
	Currency      string   `json:"currency"`
	Amenities     []string `json:"amenities"`
	ImageURL      string   `json:"image_url"`
}

type HotelSearchResponse struct {
	Hotels []HotelContent `json:"hotels"`
}
