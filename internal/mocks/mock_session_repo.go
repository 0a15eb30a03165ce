package mocks

import (
	"context"
	"time"

	"github.com/andriyko-dev/cinema-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) GetAll(
	ctx context.Context,
	filters domain.SessionFilters,
	pagination domain.Pagination) ([]domain.Session, *domain.Metadata, error) {

	args := m.Called(ctx, filters, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).([]domain.Session), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockSessionRepo) GetById(ctx context.Context, id int) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepo) Create(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)

	return args.Error(0)
}

func (m *MockSessionRepo) Update(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)

	return args.Error(0)
}

func (m *MockSessionRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockSessionRepo) IsHallAvailable(
	ctx context.Context,
	hallID int,
	start, end time.Time,
	excludeSessionID int) (bool, error) {

	args := m.Called(ctx, hallID, start, end, excludeSessionID)

	return args.Bool(0), args.Error(1)
}
