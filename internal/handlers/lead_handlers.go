package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"leadapi/internal/apperrors"
	"leadapi/internal/common"
	"leadapi/internal/middleware"
	"leadapi/internal/models"
	"leadapi/internal/services"

	"github.com/labstack/echo/v4"
)

// LeadHandlers handles lead-related HTTP requests
type LeadHandlers struct {
	leadService services.LeadService
}

// NewLeadHandlers creates a new lead handlers instance
func NewLeadHandlers(leadService services.LeadService) *LeadHandlers {
	return &LeadHandlers{
		leadService: leadService,
	}
}

// CheckPhone handles checking whether a phone number was already submitted
// @Summary Check a phone number
// @Description Reports whether a lead with this phone already exists. The number is normalized before lookup, so any formatting of the same digits matches.
// @Tags leads
// @Produce json
// @Param phone path string true "Phone number in any format"
// @Success 200 {object} models.CheckResult
// @Failure 500 {object} common.ErrorResponse
// @Router /api/check/{phone} [get]
func (h *LeadHandlers) CheckPhone(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.leadService.CheckPhone(ctx, c.Param("phone"))
	if err != nil {
		return common.SendServerError(c, "Failed to check phone number")
	}

	return c.JSON(http.StatusOK, result)
}

// CreateLeadRequest represents the lead submission payload
type CreateLeadRequest struct {
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	Gender            *string `json:"gender"`
	DateOfBirth       *string `json:"date_of_birth"`
	Phone             string  `json:"phone"`
	MobilePhone       *string `json:"mobile_phone"`
	Email             *string `json:"email"`
	Street            *string `json:"street"`
	City              *string `json:"city"`
	State             *string `json:"state"`
	PostalCode        *string `json:"postal_code"`
	PrimaryInsurance  *string `json:"primary_insurance"`
	TotalMedCount     *int    `json:"total_med_count"`
	ListAffiliateName *string `json:"list_affiliate_name"`
	SalesforceStatus  *string `json:"salesforce_status"`
}

// CreateLead handles submitting a new lead
// @Summary Submit a new lead
// @Description Validates required fields, normalizes the phone number and stores the lead. A phone that is already on file is rejected with a conflict.
// @Tags leads
// @Accept json
// @Produce json
// @Param lead body CreateLeadRequest true "Lead payload"
// @Success 201 {object} models.Lead
// @Failure 400 {object} common.ErrorResponse
// @Failure 409 {object} common.ErrorResponse
// @Failure 500 {object} common.ErrorResponse
// @Router /api/leads [post]
func (h *LeadHandlers) CreateLead(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	lead := &models.Lead{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Gender:            req.Gender,
		DateOfBirth:       req.DateOfBirth,
		Phone:             req.Phone,
		MobilePhone:       req.MobilePhone,
		Email:             req.Email,
		Street:            req.Street,
		City:              req.City,
		State:             req.State,
		PostalCode:        req.PostalCode,
		PrimaryInsurance:  req.PrimaryInsurance,
		TotalMedCount:     req.TotalMedCount,
		ListAffiliateName: req.ListAffiliateName,
		SalesforceStatus:  common.SafeString(req.SalesforceStatus),
	}

	created, err := h.leadService.Create(ctx, lead)
	if err != nil {
		var verr *apperrors.ValidationError
		if errors.As(err, &verr) {
			return common.SendValidationError(c, verr.Field, verr.Message)
		}
		var dup *apperrors.ErrDuplicatePhone
		if errors.As(err, &dup) {
			middleware.RecordDuplicateRejected()
			return common.SendDuplicateError(c, fmt.Sprintf("Lead with phone %s already exists", dup.Phone))
		}
		return common.SendServerError(c, "Failed to create lead")
	}

	middleware.RecordLeadCreated()
	return c.JSON(http.StatusCreated, created)
}

// ListLeadsRequest represents query parameters for listing leads
type ListLeadsRequest struct {
	Skip              int    `query:"skip"`
	Limit             int    `query:"limit"`
	Search            string `query:"search"`
	StartDate         string `query:"start_date"`
	EndDate           string `query:"end_date"`
	SignedUp          string `query:"signed_up"`
	CallbackScheduled string `query:"callback_scheduled"`
}

// ListLeadsResponse represents one page of leads plus the effective paging window
type ListLeadsResponse struct {
	Leads []*models.Lead `json:"leads"`
	Total int            `json:"total"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
}

// ListLeads handles listing leads with optional filters and pagination
// @Summary List leads
// @Description Returns one page of leads, newest first, with the total match count. Filters combine with AND; malformed dates are ignored.
// @Tags leads
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size, capped at 500" default(100)
// @Param search query string false "Substring match over phone, names and email"
// @Param start_date query string false "Earliest submission date (YYYY-MM-DD)"
// @Param end_date query string false "Latest submission date (YYYY-MM-DD)"
// @Param signed_up query bool false "Filter by signed-up flag"
// @Param callback_scheduled query bool false "Filter by callback flag"
// @Success 200 {object} ListLeadsResponse
// @Failure 400 {object} common.ErrorResponse
// @Failure 500 {object} common.ErrorResponse
// @Router /api/leads [get]
func (h *LeadHandlers) ListLeads(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListLeadsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	query := &models.LeadQuery{
		Search:            req.Search,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		SignedUp:          common.ParseBoolParam(req.SignedUp),
		CallbackScheduled: common.ParseBoolParam(req.CallbackScheduled),
		Skip:              req.Skip,
		Limit:             req.Limit,
	}

	leads, total, err := h.leadService.List(ctx, query)
	if err != nil {
		return common.SendServerError(c, "Failed to list leads")
	}

	skip, limit := common.ClampPagination(req.Skip, req.Limit)
	return c.JSON(http.StatusOK, &ListLeadsResponse{
		Leads: leads,
		Total: total,
		Skip:  skip,
		Limit: limit,
	})
}

// GetLead handles getting lead details by ID
// @Summary Get a lead
// @Tags leads
// @Produce json
// @Param id path int true "Lead ID"
// @Success 200 {object} models.Lead
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Failure 500 {object} common.ErrorResponse
// @Router /api/leads/{id} [get]
func (h *LeadHandlers) GetLead(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return common.SendClientError(c, "Invalid lead ID format")
	}

	lead, err := h.leadService.GetByID(ctx, id)
	if err != nil {
		var notFound *apperrors.ErrLeadNotFound
		if errors.As(err, &notFound) {
			return common.SendNotFoundError(c, "Lead")
		}
		return common.SendServerError(c, "Failed to get lead")
	}

	return c.JSON(http.StatusOK, lead)
}

// DeleteLead handles deleting a lead
// @Summary Delete a lead
// @Description Permanently removes the lead. The freed phone number can be submitted again.
// @Tags leads
// @Produce json
// @Param id path int true "Lead ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Failure 500 {object} common.ErrorResponse
// @Router /api/leads/{id} [delete]
func (h *LeadHandlers) DeleteLead(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return common.SendClientError(c, "Invalid lead ID format")
	}

	if err := h.leadService.Delete(ctx, id); err != nil {
		var notFound *apperrors.ErrLeadNotFound
		if errors.As(err, &notFound) {
			return common.SendNotFoundError(c, "Lead")
		}
		return common.SendServerError(c, "Failed to delete lead")
	}

	middleware.RecordLeadDeleted()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Lead deleted successfully",
		"id":      id,
	})
}

// ToggleSignup handles flipping the signed-up flag on a lead
// @Summary Toggle the signed-up flag
// @Description Flips signed_up and sets or clears signed_up_at in the same statement, so the pair always agrees.
// @Tags leads
// @Produce json
// @Param id path int true "Lead ID"
// @Success 200 {object} models.Lead
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Failure 500 {object} common.ErrorResponse
// @Router /api/leads/{id}/signup [patch]
func (h *LeadHandlers) ToggleSignup(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return common.SendClientError(c, "Invalid lead ID format")
	}

	lead, err := h.leadService.ToggleSignedUp(ctx, id)
	if err != nil {
		var notFound *apperrors.ErrLeadNotFound
		if errors.As(err, &notFound) {
			return common.SendNotFoundError(c, "Lead")
		}
		return common.SendServerError(c, "Failed to update lead")
	}

	return c.JSON(http.StatusOK, lead)
}

// ToggleCallback handles flipping the callback-scheduled flag on a lead
// @Summary Toggle the callback flag
// @Description Flips callback_scheduled and sets or clears callback_scheduled_at in the same statement, so the pair always agrees.
// @Tags leads
// @Produce json
// @Param id path int true "Lead ID"
// @Success 200 {object} models.Lead
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Failure 500 {object} common.ErrorResponse
// @Router /api/leads/{id}/callback [patch]
func (h *LeadHandlers) ToggleCallback(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return common.SendClientError(c, "Invalid lead ID format")
	}

	lead, err := h.leadService.ToggleCallbackScheduled(ctx, id)
	if err != nil {
		var notFound *apperrors.ErrLeadNotFound
		if errors.As(err, &notFound) {
			return common.SendNotFoundError(c, "Lead")
		}
		return common.SendServerError(c, "Failed to update lead")
	}

	return c.JSON(http.StatusOK, lead)
}

// ExportLeadsCSV handles downloading leads as a CSV file
// @Summary Export leads as CSV
// @Description Streams all matching leads, newest first, as a CSV attachment.
// @Tags leads
// @Produce text/csv
// @Param signed_up query bool false "Only leads with this signed-up state"
// @Success 200 {string} string "CSV file"
// @Failure 500 {object} common.ErrorResponse
// @Router /api/leads/export/csv [get]
func (h *LeadHandlers) ExportLeadsCSV(c echo.Context) error {
	ctx := c.Request().Context()

	signedUp := common.ParseBoolParam(c.QueryParam("signed_up"))

	data, err := h.leadService.ExportCSV(ctx, signedUp)
	if err != nil {
		return common.SendServerError(c, "Failed to export leads")
	}

	middleware.RecordCSVExport()
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=leads_export.csv")
	return c.Blob(http.StatusOK, "text/csv", data)
}

// GetStats handles getting aggregate lead counts
// @Summary Lead statistics
// @Description Returns aggregate counts. Daily and weekly windows are bounded by UTC midnight of the current day.
// @Tags leads
// @Produce json
// @Success 200 {object} models.LeadStats
// @Failure 500 {object} common.ErrorResponse
// @Router /api/stats [get]
func (h *LeadHandlers) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.leadService.Stats(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to get stats")
	}

	return c.JSON(http.StatusOK, stats)
}
