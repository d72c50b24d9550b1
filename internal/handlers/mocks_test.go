package handlers

import (
	"context"

	"leadapi/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockLeadService is a testify mock of services.LeadService.
type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) CheckPhone(ctx context.Context, phone string) (*models.CheckResult, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckResult), args.Error(1)
}

func (m *MockLeadService) Create(ctx context.Context, lead *models.Lead) (*models.Lead, error) {
	args := m.Called(ctx, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockLeadService) List(ctx context.Context, query *models.LeadQuery) ([]*models.Lead, int, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Lead), args.Int(1), args.Error(2)
}

func (m *MockLeadService) GetByID(ctx context.Context, id int64) (*models.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockLeadService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadService) ToggleSignedUp(ctx context.Context, id int64) (*models.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockLeadService) ToggleCallbackScheduled(ctx context.Context, id int64) (*models.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockLeadService) ExportCSV(ctx context.Context, signedUp *bool) ([]byte, error) {
	args := m.Called(ctx, signedUp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockLeadService) Stats(ctx context.Context) (*models.LeadStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeadStats), args.Error(1)
}
