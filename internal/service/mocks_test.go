package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Rrens/support-assistant/internal/llm"
)

// MockLLMProvider mocks llm.Provider
type MockLLMProvider struct {
	mock.Mock
}

func (m *MockLLMProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockLLMProvider) AvailableModels() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockLLMProvider) DefaultModel() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockLLMProvider) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockLLMProvider) Generate(ctx context.Context, prompt string, model string) (*llm.Response, error) {
	args := m.Called(ctx, prompt, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Response), args.Error(1)
}

func newMockProvider(configured bool) *MockLLMProvider {
	p := new(MockLLMProvider)
	p.On("Name").Return("mock").Maybe()
	p.On("IsConfigured").Return(configured).Maybe()
	return p
}
