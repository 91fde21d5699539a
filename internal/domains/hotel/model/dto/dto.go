package dto

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"roam/internal/domains/hotel/model"
	"roam/shared"
	gDto "roam/shared/dto"
	gModel "roam/shared/model"
	"roam/shared/timezone"
)

type CreateHotelRequest struct {
	Name          string   `json:"name"                  validate:"required,min=2,max=200"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	City          string   `json:"city"                  validate:"required,min=2,max=100"`
	Country       string   `json:"country"               validate:"required,min=2,max=100"`
	Address       *string  `json:"address,omitempty"     validate:"omitempty,max=300"`
	StarRating    int      `json:"star_rating"           validate:"required,min=1,max=5"`
	Amenities     []string `json:"amenities,omitempty"   validate:"omitempty,dive,min=1"`
	PricePerNight float64  `json:"price_per_night"       validate:"required,gt=0"`
	TotalRooms    int      `json:"total_rooms"           validate:"required,min=1"`
	Images        []string `json:"images,omitempty"      validate:"omitempty,dive,url"`
}

func (r *CreateHotelRequest) ToModel(username string) model.Hotel {
	return model.Hotel{
		ID:             uuid.NewString(),
		Name:           r.Name,
		Description:    r.Description,
		City:           r.City,
		Country:        r.Country,
		Address:        r.Address,
		StarRating:     r.StarRating,
		Amenities:      r.Amenities,
		PricePerNight:  r.PricePerNight,
		TotalRooms:     r.TotalRooms,
		AvailableRooms: r.TotalRooms,
		Images:         r.Images,
		Active:         true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

// UpdateHotelRequest intentionally has no available_rooms field; inventory
// moves only through reservations and releases.
type UpdateHotelRequest struct {
	Name          *string  `db:"name"            json:"name,omitempty"            validate:"omitempty,min=2,max=200"`
	Description   *string  `db:"description"     json:"description,omitempty"     validate:"omitempty,max=2000"`
	City          *string  `db:"city"            json:"city,omitempty"            validate:"omitempty,min=2,max=100"`
	Country       *string  `db:"country"         json:"country,omitempty"         validate:"omitempty,min=2,max=100"`
	Address       *string  `db:"address"         json:"address,omitempty"         validate:"omitempty,max=300"`
	StarRating    *int     `db:"star_rating"     json:"star_rating,omitempty"     validate:"omitempty,min=1,max=5"`
	Amenities     pq.StringArray `db:"amenities"       json:"amenities,omitempty"       validate:"omitempty,dive,min=1"`
	PricePerNight *float64 `db:"price_per_night" json:"price_per_night,omitempty" validate:"omitempty,gt=0"`
	Active        *bool    `db:"active"          json:"active,omitempty"`
}

type HotelResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    *string  `json:"description,omitempty"`
	City           string   `json:"city"`
	Country        string   `json:"country"`
	Address        *string  `json:"address,omitempty"`
	StarRating     int      `json:"star_rating"`
	Amenities      []string `json:"amenities"`
	PricePerNight  float64  `json:"price_per_night"`
	TotalRooms     int      `json:"total_rooms"`
	AvailableRooms int      `json:"available_rooms"`
	Images         []string `json:"images"`
	Active         bool     `json:"active"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(model model.Hotel) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.City = model.City
	r.Country = model.Country
	r.Address = model.Address
	r.StarRating = model.StarRating
	r.Amenities = model.Amenities
	r.PricePerNight = model.PricePerNight
	r.TotalRooms = model.TotalRooms
	r.AvailableRooms = model.AvailableRooms
	r.Images = model.Images
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}

// UploadImageRequest carries a base64-encoded image, optionally as a data URI.
type UploadImageRequest struct {
	FileName string `json:"file_name" validate:"required,min=1,max=200"`
	Image    string `json:"image"     validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
}

type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadImageResponse) FromModel(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}
