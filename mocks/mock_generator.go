package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"subcheck/internal/port"
)

// MockGenerator is a mock implementation of port.Generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, input port.GenerateInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}
