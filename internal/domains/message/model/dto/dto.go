package dto

import (
	"github.com/google/uuid"

	"roam/internal/domains/message/model"
	"roam/shared"
	"roam/shared/constant"
	gDto "roam/shared/dto"
	gModel "roam/shared/model"
	"roam/shared/timezone"
)

type CreateMessageRequest struct {
	Subject  string `json:"subject"  validate:"required,min=2,max=200"`
	Body     string `json:"body"     validate:"required,min=2,max=5000"`
	Category string `json:"category" validate:"required,min=2,max=100"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

func (c *CreateMessageRequest) ToModel(user string) model.Message {
	priority := c.Priority
	if priority == constant.Empty {
		priority = "medium"
	}

	return model.Message{
		ID:       uuid.NewString(),
		UserID:   user,
		Subject:  c.Subject,
		Body:     c.Body,
		Category: c.Category,
		Priority: priority,
		Status:   constant.MessageStatusOpen,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateMessageRequest struct {
	Status     *string `json:"status,omitempty"      validate:"omitempty,oneof=in_progress resolved closed"`
	EmployeeID *string `json:"employee_id,omitempty" validate:"omitempty,uuid"`
	Priority   *string `json:"priority,omitempty"    validate:"omitempty,oneof=low medium high"`
}

type MessageResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Subject    string  `json:"subject"`
	Body       string  `json:"body"`
	Category   string  `json:"category"`
	Priority   string  `json:"priority"`
	Status     string  `json:"status"`
	gDto.Metadata
}

func (r *MessageResponse) FromModel(model model.Message) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.EmployeeID = model.EmployeeID
	r.Subject = model.Subject
	r.Body = model.Body
	r.Category = model.Category
	r.Priority = model.Priority
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetMessagesResponse struct {
	Messages  []MessageResponse `json:"messages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetMessagesResponse) FromModels(models []model.Message, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Messages = make([]MessageResponse, len(models))
	for i, mod := range models {
		r.Messages[i].FromModel(mod)
	}
}
