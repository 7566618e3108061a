package mocks

import (
	"context"

	"emicalc/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockCalculationService struct {
	mock.Mock
}

func (m *MockCalculationService) Calculate(ctx context.Context, in service.CalculationInput) (*service.CalculationResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CalculationResult), args.Error(1)
}

func (m *MockCalculationService) Get(ctx context.Context, id string) (*service.CalculationResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CalculationResult), args.Error(1)
}

func (m *MockCalculationService) List(ctx context.Context, limit, offset int) (*service.CalculationListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CalculationListResult), args.Error(1)
}

func (m *MockCalculationService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCalculationService) Export(ctx context.Context, id string) (*service.ExportResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}
