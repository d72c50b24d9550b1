package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"leadapi/internal/models"
	"leadapi/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func()
}

// SetupTestDB connects to the database named by TEST_DATABASE_URL, applies
// the schema migrations and empties the leads table. Tests that need a live
// database are skipped when the variable is unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := database.Migrate(context.Background(), pool); err != nil {
		pool.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	TruncateLeads(t, pool)

	return &TestDB{
		Pool: pool,
		Cleanup: func() {
			pool.Close()
		},
	}
}

// TruncateLeads empties the leads table so each test starts from a clean
// store.
func TruncateLeads(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "TRUNCATE leads RESTART IDENTITY"); err != nil {
		t.Fatalf("Failed to truncate leads table: %v", err)
	}
}

// SetupTestLead inserts a lead row directly and returns it. The service path
// is deliberately bypassed so tests can control submitted_at; the phone must
// already be digits only.
func SetupTestLead(t *testing.T, pool *pgxpool.Pool, phone string, submittedAt time.Time) *models.Lead {
	t.Helper()

	lead := &models.Lead{
		FirstName:        "Test",
		LastName:         "Lead",
		Phone:            phone,
		SubmittedAt:      submittedAt,
		SalesforceStatus: "success",
	}

	query := `
		INSERT INTO leads (first_name, last_name, phone, submitted_at, salesforce_status, signed_up, callback_scheduled)
		VALUES ($1, $2, $3, $4, $5, FALSE, FALSE)
		RETURNING id
	`
	err := pool.QueryRow(context.Background(), query,
		lead.FirstName, lead.LastName, lead.Phone, lead.SubmittedAt, lead.SalesforceStatus).Scan(&lead.ID)
	if err != nil {
		t.Fatalf("Failed to create test lead: %v", err)
	}

	return lead
}
