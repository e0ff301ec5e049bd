package mocks

import (
	"context"

	"github.com/karavil/cinema-booking-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockAuditoriumRepo struct {
	mock.Mock
}

func (m *MockAuditoriumRepo) Get(ctx context.Context, id int) (*domain.Auditorium, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Auditorium), args.Error(1)
}
