package mocks

import (
	"context"

	"github.com/andriyko-dev/cinema-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTicketRepo struct {
	mock.Mock
}

func (m *MockTicketRepo) GetBookedBySession(ctx context.Context, sessionID int) ([]domain.Ticket, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketRepo) GetById(ctx context.Context, id int) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepo) GetByUser(ctx context.Context, userID int) ([]domain.Ticket, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketRepo) GetAll(ctx context.Context, pagination domain.Pagination) ([]domain.Ticket, *domain.Metadata, error) {
	args := m.Called(ctx, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).([]domain.Ticket), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)

	return args.Error(0)
}

func (m *MockTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)

	return args.Error(0)
}

func (m *MockTicketRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
