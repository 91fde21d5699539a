package dto

import (
	"github.com/google/uuid"

	"roam/internal/domains/review/model"
	"roam/shared"
	gDto "roam/shared/dto"
	gModel "roam/shared/model"
	"roam/shared/timezone"
)

type CreateReviewRequest struct {
	BookingID *string `json:"booking_id,omitempty" validate:"omitempty,uuid"`
	Rating    int     `json:"rating"               validate:"required,min=1,max=5"`
	Title     *string `json:"title,omitempty"      validate:"omitempty,max=200"`
	Comment   *string `json:"comment,omitempty"    validate:"omitempty,max=2000"`
}

func (c *CreateReviewRequest) ToModel(user, hotelID string) model.Review {
	return model.Review{
		ID:        uuid.NewString(),
		UserID:    user,
		HotelID:   hotelID,
		BookingID: c.BookingID,
		Rating:    c.Rating,
		Title:     c.Title,
		Comment:   c.Comment,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateReviewRequest struct {
	Rating  *int    `db:"rating"  json:"rating,omitempty"  validate:"omitempty,min=1,max=5"`
	Title   *string `db:"title"   json:"title,omitempty"   validate:"omitempty,max=200"`
	Comment *string `db:"comment" json:"comment,omitempty" validate:"omitempty,max=2000"`
}

type ReviewResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	UserName  *string `json:"user_name,omitempty"`
	HotelID   string  `json:"hotel_id"`
	BookingID *string `json:"booking_id,omitempty"`
	Rating    int     `json:"rating"`
	Title     *string `json:"title,omitempty"`
	Comment   *string `json:"comment,omitempty"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.UserName = model.UserName
	r.HotelID = model.HotelID
	r.BookingID = model.BookingID
	r.Rating = model.Rating
	r.Title = model.Title
	r.Comment = model.Comment
	r.Metadata.FromModel(model.Metadata)
}

type GetReviewsResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"average_rating"`
	TotalPage     int              `json:"total_page"`
	TotalData     int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, averageRating float64, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.AverageRating = averageRating

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}
