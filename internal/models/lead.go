package models

import "time"

// Lead is a captured contact record. Phone is stored normalized (digits
// only) and is unique across the table; it is the deduplication key.
// SignedUpAt and CallbackScheduledAt are non-nil exactly when their flag is
// true, which the toggle operations maintain atomically.
type Lead struct {
	ID                  int64      `json:"id" db:"id"`
	FirstName           string     `json:"first_name" db:"first_name"`
	LastName            string     `json:"last_name" db:"last_name"`
	Gender              *string    `json:"gender" db:"gender"`
	DateOfBirth         *string    `json:"date_of_birth" db:"date_of_birth"`
	Phone               string     `json:"phone" db:"phone"`
	MobilePhone         *string    `json:"mobile_phone" db:"mobile_phone"`
	Email               *string    `json:"email" db:"email"`
	Street              *string    `json:"street" db:"street"`
	City                *string    `json:"city" db:"city"`
	State               *string    `json:"state" db:"state"`
	PostalCode          *string    `json:"postal_code" db:"postal_code"`
	PrimaryInsurance    *string    `json:"primary_insurance" db:"primary_insurance"`
	TotalMedCount       *int       `json:"total_med_count" db:"total_med_count"`
	ListAffiliateName   *string    `json:"list_affiliate_name" db:"list_affiliate_name"`
	SubmittedAt         time.Time  `json:"submitted_at" db:"submitted_at"`
	SalesforceStatus    string     `json:"salesforce_status" db:"salesforce_status"`
	SignedUp            bool       `json:"signed_up" db:"signed_up"`
	SignedUpAt          *time.Time `json:"signed_up_at" db:"signed_up_at"`
	CallbackScheduled   bool       `json:"callback_scheduled" db:"callback_scheduled"`
	CallbackScheduledAt *time.Time `json:"callback_scheduled_at" db:"callback_scheduled_at"`
}

// LeadQuery carries raw list parameters as received from the client. Dates
// are unparsed strings and pagination is unclamped; the service normalizes
// both before anything reaches the repository.
type LeadQuery struct {
	Search            string
	StartDate         string
	EndDate           string
	SignedUp          *bool
	CallbackScheduled *bool
	Skip              int
	Limit             int
}

// LeadFilter is the normalized form of a list query. All criteria are
// optional and combine with AND.
type LeadFilter struct {
	Search            string     // case-insensitive substring over phone, names and email
	StartDate         *time.Time // inclusive lower bound on submitted_at
	EndDate           *time.Time // inclusive upper bound, already extended to end of day
	SignedUp          *bool
	CallbackScheduled *bool
	Skip              int
	Limit             int
}

// LeadStats is the aggregate snapshot served by the stats endpoint. Daily
// and weekly counts are bounded by UTC midnight of the current day and the
// same instant seven days earlier.
type LeadStats struct {
	TotalLeads             int64 `json:"total_leads"`
	SuccessfulLeads        int64 `json:"successful_leads"`
	FailedLeads            int64 `json:"failed_leads"`
	SignedUpLeads          int64 `json:"signed_up_leads"`
	CallbackScheduledLeads int64 `json:"callback_scheduled_leads"`
	DailyLeads             int64 `json:"daily_leads"`
	WeeklyLeads            int64 `json:"weekly_leads"`
}

// CheckResult is the outcome of a duplicate-phone probe.
type CheckResult struct {
	Exists  bool   `json:"exists"`
	Message string `json:"message"`
}
