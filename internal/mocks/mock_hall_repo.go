package mocks

import (
	"context"

	"github.com/andriyko-dev/cinema-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockHallRepo struct {
	mock.Mock
}

func (m *MockHallRepo) GetAll(ctx context.Context) ([]domain.Hall, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Hall), args.Error(1)
}

func (m *MockHallRepo) GetById(ctx context.Context, id int) (*domain.Hall, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Hall), args.Error(1)
}

func (m *MockHallRepo) GetBySession(ctx context.Context, sessionID int) (*domain.Hall, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Hall), args.Error(1)
}

func (m *MockHallRepo) Create(ctx context.Context, hall *domain.Hall) error {
	args := m.Called(ctx, hall)

	return args.Error(0)
}

func (m *MockHallRepo) Update(ctx context.Context, hall *domain.Hall) error {
	args := m.Called(ctx, hall)

	return args.Error(0)
}

func (m *MockHallRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
