package mocks

import (
	"context"

	"emicalc/internal/model"
	"emicalc/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockCalculationRepository struct {
	mock.Mock
}

func (m *MockCalculationRepository) Create(ctx context.Context, calc *model.Calculation) (*model.Calculation, error) {
	args := m.Called(ctx, calc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, *model.Calculation) *model.Calculation); ok {
		return fn(ctx, calc), args.Error(1)
	}
	return args.Get(0).(*model.Calculation), args.Error(1)
}

func (m *MockCalculationRepository) FindByID(ctx context.Context, id string) (*model.Calculation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Calculation), args.Error(1)
}

func (m *MockCalculationRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Calculation], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Calculation]), args.Error(1)
}

func (m *MockCalculationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
