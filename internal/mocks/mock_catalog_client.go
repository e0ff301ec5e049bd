package mocks

import (
	"context"

	"github.com/karavil/cinema-booking-api/internal/catalog"
)

type MockCatalogClient struct {
	GetAllFunc  func(ctx context.Context) ([]catalog.Movie, error)
	GetByIDFunc func(ctx context.Context, id string) (*catalog.Movie, error)
}

func (m *MockCatalogClient) GetAll(ctx context.Context) ([]catalog.Movie, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockCatalogClient) GetByID(ctx context.Context, id string) (*catalog.Movie, error) {
	return m.GetByIDFunc(ctx, id)
}
