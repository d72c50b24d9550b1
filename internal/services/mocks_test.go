package services

import (
	"context"
	"time"

	"leadapi/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id int64) (*models.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockLeadRepository) GetByPhone(ctx context.Context, phone string) (*models.Lead, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter *models.LeadFilter) ([]*models.Lead, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Lead), args.Int(1), args.Error(2)
}

func (m *MockLeadRepository) ListForExport(ctx context.Context, signedUp *bool) ([]*models.Lead, error) {
	args := m.Called(ctx, signedUp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lead), args.Error(1)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) ToggleSignedUp(ctx context.Context, id int64, now time.Time) (*models.Lead, error) {
	args := m.Called(ctx, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockLeadRepository) ToggleCallbackScheduled(ctx context.Context, id int64, now time.Time) (*models.Lead, error) {
	args := m.Called(ctx, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockLeadRepository) Stats(ctx context.Context, dayStart, weekStart time.Time) (*models.LeadStats, error) {
	args := m.Called(ctx, dayStart, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeadStats), args.Error(1)
}
