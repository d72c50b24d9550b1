package database

// migrations is an ordered list of SQL migration groups. Each entry is a slice
// of SQL statements that are executed together in a single transaction. The
// version number is the 1-based index into this slice.
//
// Statements carry IF NOT EXISTS guards so a database created by an earlier
// deployment, before schema_migrations existed, is adopted without failing.
var migrations = [][]string{
	// Migration 1: leads table with the phone dedup index
	{
		`CREATE TABLE IF NOT EXISTS leads (
			id BIGSERIAL PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			gender VARCHAR(20),
			date_of_birth VARCHAR(20),
			phone VARCHAR(20) NOT NULL,
			mobile_phone VARCHAR(20),
			email VARCHAR(255),
			street VARCHAR(255),
			city VARCHAR(100),
			state VARCHAR(50),
			postal_code VARCHAR(20),
			primary_insurance VARCHAR(255),
			total_med_count INTEGER,
			list_affiliate_name VARCHAR(255),
			submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			salesforce_status VARCHAR(50) DEFAULT 'success'
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_leads_phone ON leads(phone)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_submitted_at ON leads(submitted_at)`,
	},

	// Migration 2: signup and callback tracking columns
	{
		`ALTER TABLE leads ADD COLUMN IF NOT EXISTS signed_up BOOLEAN NOT NULL DEFAULT FALSE`,
		`ALTER TABLE leads ADD COLUMN IF NOT EXISTS signed_up_at TIMESTAMPTZ`,
		`ALTER TABLE leads ADD COLUMN IF NOT EXISTS callback_scheduled BOOLEAN NOT NULL DEFAULT FALSE`,
		`ALTER TABLE leads ADD COLUMN IF NOT EXISTS callback_scheduled_at TIMESTAMPTZ`,
		`UPDATE leads SET salesforce_status = 'success' WHERE salesforce_status IS NULL`,
		`ALTER TABLE leads ALTER COLUMN salesforce_status SET DEFAULT 'success'`,
	},
}
