package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roam/internal/domains/message/model"
	"roam/shared/constant"
)

func TestMessage_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"open to in_progress", constant.MessageStatusOpen, constant.MessageStatusInProgress, true},
		{"open to closed", constant.MessageStatusOpen, constant.MessageStatusClosed, true},
		{"open to resolved skips pickup", constant.MessageStatusOpen, constant.MessageStatusResolved, false},
		{"in_progress to resolved", constant.MessageStatusInProgress, constant.MessageStatusResolved, true},
		{"in_progress to closed", constant.MessageStatusInProgress, constant.MessageStatusClosed, true},
		{"in_progress back to open", constant.MessageStatusInProgress, constant.MessageStatusOpen, false},
		{"resolved to closed", constant.MessageStatusResolved, constant.MessageStatusClosed, true},
		{"resolved back to in_progress", constant.MessageStatusResolved, constant.MessageStatusInProgress, false},
		{"closed is terminal", constant.MessageStatusClosed, constant.MessageStatusOpen, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := model.Message{Status: tt.from}

			assert.Equal(t, tt.want, message.CanTransitionTo(tt.to))
		})
	}
}
