package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockWorkflowTrigger is a mock implementation of port.WorkflowTrigger.
type MockWorkflowTrigger struct {
	mock.Mock
}

func (m *MockWorkflowTrigger) Invoke(ctx context.Context, webhookURL string, payload map[string]interface{}) (map[string]interface{}, error) {
	args := m.Called(ctx, webhookURL, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}
