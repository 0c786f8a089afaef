package mocks

import (
	"stock-manager/core/notify"

	"github.com/stretchr/testify/mock"
)

// Notifier is a mock implementation of notify.Notifier
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Emit(op notify.Operation, entity string, payload any) {
	m.Called(op, entity, payload)
}
