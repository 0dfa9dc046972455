package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT,
		password_hash TEXT,
		type TEXT NOT NULL,
		role TEXT NOT NULL,
		status TEXT NOT NULL,
		is_subscribed BOOLEAN NOT NULL DEFAULT FALSE,
		avatar TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createPendingRegistrationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE pending_registrations (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		purpose TEXT NOT NULL,
		otp TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at DATETIME,
		UNIQUE (email, purpose)
	);`)
}

func createItemTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE items (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		brand TEXT NOT NULL,
		model TEXT NOT NULL,
		category TEXT NOT NULL,
		vin TEXT,
		purchase_date DATETIME,
		total_mileage REAL,
		last_service_date DATETIME,
		last_service_name TEXT,
		image TEXT,
		service_intervals TEXT,
		forum_suggestions TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createBillingTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE services (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		price REAL NOT NULL,
		features TEXT,
		plan TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE subscriptions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		service_id TEXT NOT NULL,
		plan TEXT NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		status TEXT NOT NULL,
		price REAL NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE payment_transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		subscription_id TEXT NOT NULL,
		amount INTEGER NOT NULL,
		currency TEXT NOT NULL,
		payment_method TEXT,
		status TEXT NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE webhook_events (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL UNIQUE,
		type TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createMailTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE mails (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
