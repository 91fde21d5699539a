package model

import (
	"roam/shared/constant"
	"roam/shared/model"
)

const (
	TableName  = "messages"
	EntityName = "message"

	FieldID         = "id"
	FieldUserID     = "user_id"
	FieldEmployeeID = "employee_id"
	FieldSubject    = "subject"
	FieldBody       = "body"
	FieldCategory   = "category"
	FieldPriority   = "priority"
	FieldStatus     = "status"
)

type Message struct {
	ID         string  `db:"id"`
	UserID     string  `db:"user_id"`
	EmployeeID *string `db:"employee_id"`
	Subject    string  `db:"subject"`
	Body       string  `db:"body"`
	Category   string  `db:"category"`
	Priority   string  `db:"priority"`
	Status     string  `db:"status"`
	model.Metadata
}

// CanTransitionTo enforces the support ticket flow: open tickets get picked
// up, in-progress tickets get resolved or closed, resolved tickets can still
// be closed.
func (m Message) CanTransitionTo(status string) bool {
	switch m.Status {
	case constant.MessageStatusOpen:
		return status == constant.MessageStatusInProgress || status == constant.MessageStatusClosed
	case constant.MessageStatusInProgress:
		return status == constant.MessageStatusResolved || status == constant.MessageStatusClosed
	case constant.MessageStatusResolved:
		return status == constant.MessageStatusClosed
	default:
		return false
	}
}
