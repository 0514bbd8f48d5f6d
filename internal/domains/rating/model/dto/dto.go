package dto

import (
	"lodge/internal/domains/rating/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type SubmitRatingRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	Star      int    `json:"star"       validate:"required,min=1,max=5"`
	Comment   string `json:"comment"    validate:"omitempty,max=500"`
}

func (c *SubmitRatingRequest) ToModel(user, userID string) model.Rating {
	return model.Rating{
		ID:        uuid.NewString(),
		UserID:    userID,
		BookingID: c.BookingID,
		Star:      c.Star,
		Comment:   c.Comment,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type RatingResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	BookingID string `json:"booking_id"`
	Star      int    `json:"star"`
	Comment   string `json:"comment"`
	gDto.Metadata
}

func (r *RatingResponse) FromModel(model model.Rating) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.BookingID = model.BookingID
	r.Star = model.Star
	r.Comment = model.Comment
	r.Metadata.FromModel(model.Metadata)
}

type GetRatingsResponse struct {
	Ratings   []RatingResponse `json:"ratings"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetRatingsResponse) FromModels(models []model.Rating, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Ratings = make([]RatingResponse, len(models))
	for i, mod := range models {
		r.Ratings[i].FromModel(mod)
	}
}
