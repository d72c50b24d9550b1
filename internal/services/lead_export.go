package services

import (
	"context"
	"encoding/csv"
	"strconv"
	"strings"
	"time"
)

// exportTimeLayout is the timestamp format used in CSV exports.
const exportTimeLayout = "2006-01-02 15:04:05"

// ExportCSV renders every matching lead as CSV, newest first. When signedUp
// is non-nil only leads with that flag state are included. The header row is
// always present, even for an empty result.
func (s *leadService) ExportCSV(ctx context.Context, signedUp *bool) ([]byte, error) {
	leads, err := s.leadRepo.ListForExport(ctx, signedUp)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"ID",
		"First Name",
		"Last Name",
		"Gender",
		"Date of Birth",
		"Phone",
		"Mobile Phone",
		"Email",
		"Street",
		"City",
		"State",
		"Postal Code",
		"Primary Insurance",
		"Total Med Count",
		"List Affiliate Name",
		"Submitted At",
		"Salesforce Status",
		"Signed Up",
		"Signed Up At",
		"Callback Scheduled",
		"Callback Scheduled At",
	}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, lead := range leads {
		record := []string{
			strconv.FormatInt(lead.ID, 10),
			lead.FirstName,
			lead.LastName,
			nullToEmpty(lead.Gender),
			nullToEmpty(lead.DateOfBirth),
			lead.Phone,
			nullToEmpty(lead.MobilePhone),
			nullToEmpty(lead.Email),
			nullToEmpty(lead.Street),
			nullToEmpty(lead.City),
			nullToEmpty(lead.State),
			nullToEmpty(lead.PostalCode),
			nullToEmpty(lead.PrimaryInsurance),
			nullIntPointerToString(lead.TotalMedCount),
			nullToEmpty(lead.ListAffiliateName),
			lead.SubmittedAt.UTC().Format(exportTimeLayout),
			lead.SalesforceStatus,
			yesNo(lead.SignedUp),
			nullTimePointerToString(lead.SignedUpAt),
			yesNo(lead.CallbackScheduled),
			nullTimePointerToString(lead.CallbackScheduledAt),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return []byte(sb.String()), nil
}

// Helper functions
func nullToEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullIntPointerToString(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func nullTimePointerToString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(exportTimeLayout)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
