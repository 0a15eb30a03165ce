package mocks

import (
	"context"

	"github.com/andriyko-dev/cinema-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockMovieRepo struct {
	mock.Mock
}

func (m *MockMovieRepo) GetAll(ctx context.Context, pagination domain.Pagination) ([]domain.Movie, *domain.Metadata, error) {
	args := m.Called(ctx, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).([]domain.Movie), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	args := m.Called(ctx, movie)

	return args.Error(0)
}

func (m *MockMovieRepo) Update(ctx context.Context, movie *domain.Movie) error {
	args := m.Called(ctx, movie)

	return args.Error(0)
}

func (m *MockMovieRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
