package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"leadapi/internal/apperrors"
	"leadapi/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE Postgres reports when an insert trips a
// unique index.
const pgUniqueViolation = "23505"

// DB is the subset of pgxpool.Pool the repositories depend on. Both
// *pgxpool.Pool and pgxmock.PgxPoolIface satisfy it.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const leadColumns = `id, first_name, last_name, gender, date_of_birth, phone, mobile_phone, email, street, city, state, postal_code, primary_insurance, total_med_count, list_affiliate_name, submitted_at, salesforce_status, signed_up, signed_up_at, callback_scheduled, callback_scheduled_at`

type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	GetByID(ctx context.Context, id int64) (*models.Lead, error)
	GetByPhone(ctx context.Context, phone string) (*models.Lead, error)
	List(ctx context.Context, filter *models.LeadFilter) ([]*models.Lead, int, error)
	ListForExport(ctx context.Context, signedUp *bool) ([]*models.Lead, error)
	Delete(ctx context.Context, id int64) error
	ToggleSignedUp(ctx context.Context, id int64, now time.Time) (*models.Lead, error)
	ToggleCallbackScheduled(ctx context.Context, id int64, now time.Time) (*models.Lead, error)
	Stats(ctx context.Context, dayStart, weekStart time.Time) (*models.LeadStats, error)
}

type leadRepo struct {
	db DB
}

func NewLeadRepository(db DB) LeadRepository {
	return &leadRepo{db: db}
}

// Create inserts the lead and fills in its generated id. Uniqueness of the
// normalized phone is enforced by the index, not a prior existence check, so
// concurrent submits of the same number cannot both win.
func (r *leadRepo) Create(ctx context.Context, lead *models.Lead) error {
	query := `
		INSERT INTO leads (first_name, last_name, gender, date_of_birth, phone, mobile_phone, email, street, city, state, postal_code, primary_insurance, total_med_count, list_affiliate_name, submitted_at, salesforce_status, signed_up, callback_scheduled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, FALSE, FALSE)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		lead.FirstName, lead.LastName, lead.Gender, lead.DateOfBirth, lead.Phone,
		lead.MobilePhone, lead.Email, lead.Street, lead.City, lead.State,
		lead.PostalCode, lead.PrimaryInsurance, lead.TotalMedCount,
		lead.ListAffiliateName, lead.SubmittedAt, lead.SalesforceStatus,
	).Scan(&lead.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperrors.NewDuplicatePhone(lead.Phone)
		}
		return err
	}
	return nil
}

func (r *leadRepo) GetByID(ctx context.Context, id int64) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	lead, err := scanLead(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewLeadNotFound(id)
		}
		return nil, err
	}
	return lead, nil
}

// GetByPhone looks up a lead by its normalized phone. It returns (nil, nil)
// when no lead matches; absence is an answer here, not an error.
func (r *leadRepo) GetByPhone(ctx context.Context, phone string) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE phone = $1`
	lead, err := scanLead(r.db.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return lead, nil
}

// List returns one page of leads matching the filter, newest first, together
// with the total match count across all pages.
func (r *leadRepo) List(ctx context.Context, filter *models.LeadFilter) ([]*models.Lead, int, error) {
	where, args := buildLeadWhere(filter)

	query := `SELECT ` + leadColumns + ` FROM leads` + where +
		fmt.Sprintf(` ORDER BY submitted_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, query, append(args, filter.Limit, filter.Skip)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads := []*models.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM leads` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

func (r *leadRepo) ListForExport(ctx context.Context, signedUp *bool) ([]*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads`
	args := []any{}
	if signedUp != nil {
		query += ` WHERE signed_up = $1`
		args = append(args, *signedUp)
	}
	query += ` ORDER BY submitted_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*models.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *leadRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewLeadNotFound(id)
	}
	return nil
}

// ToggleSignedUp flips the signed_up flag in one statement. The CASE reads
// the pre-update value of signed_up, so the timestamp is set when the flag
// turns on and cleared when it turns off; the pair can never disagree.
func (r *leadRepo) ToggleSignedUp(ctx context.Context, id int64, now time.Time) (*models.Lead, error) {
	query := `
		UPDATE leads
		SET signed_up = NOT signed_up,
			signed_up_at = CASE WHEN signed_up THEN NULL ELSE $2 END
		WHERE id = $1
		RETURNING ` + leadColumns
	lead, err := scanLead(r.db.QueryRow(ctx, query, id, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewLeadNotFound(id)
		}
		return nil, err
	}
	return lead, nil
}

func (r *leadRepo) ToggleCallbackScheduled(ctx context.Context, id int64, now time.Time) (*models.Lead, error) {
	query := `
		UPDATE leads
		SET callback_scheduled = NOT callback_scheduled,
			callback_scheduled_at = CASE WHEN callback_scheduled THEN NULL ELSE $2 END
		WHERE id = $1
		RETURNING ` + leadColumns
	lead, err := scanLead(r.db.QueryRow(ctx, query, id, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewLeadNotFound(id)
		}
		return nil, err
	}
	return lead, nil
}

// Stats aggregates the whole table in a single scan. dayStart and weekStart
// bound the daily and weekly counts.
func (r *leadRepo) Stats(ctx context.Context, dayStart, weekStart time.Time) (*models.LeadStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE salesforce_status = 'success'),
			COUNT(*) FILTER (WHERE salesforce_status = 'failed'),
			COUNT(*) FILTER (WHERE signed_up),
			COUNT(*) FILTER (WHERE callback_scheduled),
			COUNT(*) FILTER (WHERE submitted_at >= $1),
			COUNT(*) FILTER (WHERE submitted_at >= $2)
		FROM leads
	`
	stats := &models.LeadStats{}
	err := r.db.QueryRow(ctx, query, dayStart, weekStart).Scan(
		&stats.TotalLeads, &stats.SuccessfulLeads, &stats.FailedLeads,
		&stats.SignedUpLeads, &stats.CallbackScheduledLeads,
		&stats.DailyLeads, &stats.WeeklyLeads,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// buildLeadWhere assembles the WHERE clause for List from whichever filter
// criteria are set. Postgres allows a placeholder to be referenced more than
// once, which the search clause relies on.
func buildLeadWhere(filter *models.LeadFilter) (string, []any) {
	clauses := []string{}
	args := []any{}

	if filter.Search != "" {
		n := len(args) + 1
		clauses = append(clauses, fmt.Sprintf(`(phone ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)`, n, n, n, n))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.StartDate != nil {
		clauses = append(clauses, fmt.Sprintf(`submitted_at >= $%d`, len(args)+1))
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		clauses = append(clauses, fmt.Sprintf(`submitted_at <= $%d`, len(args)+1))
		args = append(args, *filter.EndDate)
	}
	if filter.SignedUp != nil {
		clauses = append(clauses, fmt.Sprintf(`signed_up = $%d`, len(args)+1))
		args = append(args, *filter.SignedUp)
	}
	if filter.CallbackScheduled != nil {
		clauses = append(clauses, fmt.Sprintf(`callback_scheduled = $%d`, len(args)+1))
		args = append(args, *filter.CallbackScheduled)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return ` WHERE ` + strings.Join(clauses, " AND "), args
}

func scanLead(row pgx.Row) (*models.Lead, error) {
	lead := &models.Lead{}
	err := row.Scan(
		&lead.ID, &lead.FirstName, &lead.LastName, &lead.Gender, &lead.DateOfBirth,
		&lead.Phone, &lead.MobilePhone, &lead.Email, &lead.Street, &lead.City,
		&lead.State, &lead.PostalCode, &lead.PrimaryInsurance, &lead.TotalMedCount,
		&lead.ListAffiliateName, &lead.SubmittedAt, &lead.SalesforceStatus,
		&lead.SignedUp, &lead.SignedUpAt, &lead.CallbackScheduled, &lead.CallbackScheduledAt,
	)
	if err != nil {
		return nil, err
	}
	return lead, nil
}
