package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"leadapi/internal/apperrors"
	"leadapi/internal/common"
	"leadapi/internal/models"
	"leadapi/internal/repositories"
)

type LeadService interface {
	CheckPhone(ctx context.Context, phone string) (*models.CheckResult, error)
	Create(ctx context.Context, lead *models.Lead) (*models.Lead, error)
	List(ctx context.Context, query *models.LeadQuery) ([]*models.Lead, int, error)
	GetByID(ctx context.Context, id int64) (*models.Lead, error)
	Delete(ctx context.Context, id int64) error
	ToggleSignedUp(ctx context.Context, id int64) (*models.Lead, error)
	ToggleCallbackScheduled(ctx context.Context, id int64) (*models.Lead, error)
	ExportCSV(ctx context.Context, signedUp *bool) ([]byte, error)
	Stats(ctx context.Context) (*models.LeadStats, error)
}

type leadService struct {
	leadRepo repositories.LeadRepository
	now      func() time.Time
}

func NewLeadService(leadRepo repositories.LeadRepository) LeadService {
	return &leadService{
		leadRepo: leadRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CheckPhone reports whether a lead with the given phone already exists. The
// input is normalized before lookup, so any formatting of the same number
// matches. A phone with no digits at all cannot exist in the store.
func (s *leadService) CheckPhone(ctx context.Context, phone string) (*models.CheckResult, error) {
	notFound := &models.CheckResult{
		Exists:  false,
		Message: "Phone number not found. Safe to submit.",
	}

	normalized := common.NormalizePhone(phone)
	if normalized == "" {
		return notFound, nil
	}

	lead, err := s.leadRepo.GetByPhone(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return notFound, nil
	}

	return &models.CheckResult{
		Exists:  true,
		Message: fmt.Sprintf("Lead with phone %s was already submitted on %s", phone, lead.SubmittedAt.UTC().Format("2006-01-02 15:04:05")),
	}, nil
}

// Create validates and stores a new lead. The phone is normalized for
// storage, salesforce_status defaults to "success", and the submission
// timestamp comes from the server clock. A duplicate error from the store is
// re-raised with the phone as the caller submitted it.
func (s *leadService) Create(ctx context.Context, lead *models.Lead) (*models.Lead, error) {
	if strings.TrimSpace(lead.FirstName) == "" {
		return nil, apperrors.NewValidation("first_name", "is required")
	}
	if strings.TrimSpace(lead.LastName) == "" {
		return nil, apperrors.NewValidation("last_name", "is required")
	}

	rawPhone := lead.Phone
	if strings.TrimSpace(rawPhone) == "" {
		return nil, apperrors.NewValidation("phone", "is required")
	}
	normalized := common.NormalizePhone(rawPhone)
	if normalized == "" {
		return nil, apperrors.NewValidation("phone", "must contain at least one digit")
	}

	lead.Phone = normalized
	if lead.SalesforceStatus == "" {
		lead.SalesforceStatus = "success"
	}
	lead.SubmittedAt = s.now()
	lead.SignedUp = false
	lead.SignedUpAt = nil
	lead.CallbackScheduled = false
	lead.CallbackScheduledAt = nil

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		var dup *apperrors.ErrDuplicatePhone
		if errors.As(err, &dup) {
			return nil, apperrors.NewDuplicatePhone(rawPhone)
		}
		return nil, err
	}
	return lead, nil
}

// List normalizes the raw query and fetches one page of leads plus the total
// match count. Malformed dates are ignored rather than rejected and
// pagination is clamped to the supported window.
func (s *leadService) List(ctx context.Context, query *models.LeadQuery) ([]*models.Lead, int, error) {
	filter := &models.LeadFilter{
		Search:            strings.TrimSpace(query.Search),
		SignedUp:          query.SignedUp,
		CallbackScheduled: query.CallbackScheduled,
	}
	if start, ok := common.ParseDate(query.StartDate); ok {
		filter.StartDate = &start
	}
	if end, ok := common.ParseDate(query.EndDate); ok {
		end = common.EndOfDay(end)
		filter.EndDate = &end
	}
	filter.Skip, filter.Limit = common.ClampPagination(query.Skip, query.Limit)

	return s.leadRepo.List(ctx, filter)
}

func (s *leadService) GetByID(ctx context.Context, id int64) (*models.Lead, error) {
	return s.leadRepo.GetByID(ctx, id)
}

func (s *leadService) Delete(ctx context.Context, id int64) error {
	return s.leadRepo.Delete(ctx, id)
}

func (s *leadService) ToggleSignedUp(ctx context.Context, id int64) (*models.Lead, error) {
	return s.leadRepo.ToggleSignedUp(ctx, id, s.now())
}

func (s *leadService) ToggleCallbackScheduled(ctx context.Context, id int64) (*models.Lead, error) {
	return s.leadRepo.ToggleCallbackScheduled(ctx, id, s.now())
}

// Stats derives the daily boundary from UTC midnight of the current day and
// the weekly boundary from exactly seven days before it.
func (s *leadService) Stats(ctx context.Context) (*models.LeadStats, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := dayStart.AddDate(0, 0, -7)
	return s.leadRepo.Stats(ctx, dayStart, weekStart)
}
